package services

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func replyFor(t *testing.T, intent string) string {
	t.Helper()
	for _, category := range replyCategories {
		if category.intent == intent {
			return category.reply
		}
	}
	t.Fatalf("no category %q", intent)
	return ""
}

func TestSelectReplyCategories(t *testing.T) {
	tests := []struct {
		message string
		intent  string
	}{
		{"create a task", "create"},
		{"please add groceries", "create"},
		{"something new", "create"},
		{"list everything", "list"},
		{"show me", "list"},
		{"what are my tasks", "list"},
		{"delete the first one", "delete"},
		{"remove it", "delete"},
		{"update status", "update"},
		{"edit the title", "update"},
		{"change it", "update"},
		{"help", "help"},
		{"what can you do", "help"},
		{"hello", "greeting"},
		{"hey there", "greeting"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.intent, MatchIntent(tt.message))
			assert.Equal(t, replyFor(t, tt.intent), SelectReply(tt.message))
		})
	}
}

func TestSelectReplyPriority(t *testing.T) {
	assert.Equal(t, replyFor(t, "create"), SelectReply("create and list my tasks"))
	assert.Equal(t, replyFor(t, "list"), SelectReply("show and delete"))
	assert.Equal(t, replyFor(t, "delete"), SelectReply("remove then update"))
}

func TestSelectReplySubstringSemantics(t *testing.T) {
	assert.Equal(t, "update", MatchIntent("I updated it"))
	// "this" contains "hi".
	assert.Equal(t, "greeting", MatchIntent("this"))
	// "knew" contains "new".
	assert.Equal(t, "create", MatchIntent("I knew it"))
}

func TestSelectReplyNormalization(t *testing.T) {
	want := SelectReply("create")
	assert.Equal(t, want, SelectReply("  CREATE  "))
	assert.Equal(t, want, SelectReply("Create"))
	assert.Equal(t, want, SelectReply("\tcreate\n"))
}

func TestSelectReplyFallback(t *testing.T) {
	reply := SelectReply("xyzzy")
	assert.Equal(t, IntentFallback, MatchIntent("xyzzy"))
	assert.Contains(t, reply, `"xyzzy"`)
	assert.True(t, strings.HasPrefix(reply, `You said: "xyzzy"`))
	assert.Contains(t, reply, "Try asking me to create, list, or manage your tasks!")

	// The original input is echoed verbatim, not normalized.
	assert.Contains(t, SelectReply("  Xyzzy  "), `"  Xyzzy  "`)
}

func TestSelectReplyNeverEmpty(t *testing.T) {
	inputs := []string{"", " ", "x", "xyzzy", "ÜBER", "🙂", strings.Repeat("z", 10000), "create"}
	for _, in := range inputs {
		require.NotPanics(t, func() { SelectReply(in) })
		assert.NotEmpty(t, SelectReply(in))
		assert.Equal(t, SelectReply(in), SelectReply(in))
	}
}

func TestSelectReplyConcurrent(t *testing.T) {
	want := SelectReply("show my tasks")
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, SelectReply("show my tasks"))
		}()
	}
	wg.Wait()
}
