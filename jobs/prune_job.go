package jobs

import (
	"time"

	config "github.com/anjiri1684/taskmate/configs"
	"github.com/anjiri1684/taskmate/database"
	"github.com/anjiri1684/taskmate/logger"
	"github.com/anjiri1684/taskmate/models"
	"go.uber.org/zap"
)

const defaultPruneAfterHours = 24

// PruneEmptyConversations deletes conversations that never received a message
// and have been idle longer than CONVERSATION_PRUNE_AFTER_HOURS.
func PruneEmptyConversations() {
	hours := config.ConfigInt("CONVERSATION_PRUNE_AFTER_HOURS", defaultPruneAfterHours)
	pruned, err := pruneEmptyConversations(time.Now().Add(-time.Duration(hours) * time.Hour))
	if err != nil {
		logger.Log.Error("Error pruning empty conversations", zap.Error(err))
		return
	}
	if pruned == 0 {
		logger.Log.Debug("No empty conversations to prune.")
		return
	}
	logger.Log.Info("Pruned empty conversations", zap.Int64("count", pruned))
}

func pruneEmptyConversations(cutoff time.Time) (int64, error) {
	result := database.DB.
		Where("updated_at < ?", cutoff).
		Where("NOT EXISTS (SELECT 1 FROM messages WHERE messages.conversation_id = conversations.id)").
		Delete(&models.Conversation{})
	return result.RowsAffected, result.Error
}
