package services

import (
	"fmt"
	"strings"
)

const IntentFallback = "fallback"

type replyCategory struct {
	intent   string
	triggers []string
	reply    string
}

// replyCategories is checked in order; the first category with any trigger
// contained in the normalized message wins. Matching is raw substring
// containment, so "updated" hits "update" and "this" hits "hi".
var replyCategories = []replyCategory{
	{
		intent:   "create",
		triggers: []string{"create", "add", "new"},
		reply:    "Great! You can add a task manually using the form on the Tasks tab. What's the task about?",
	},
	{
		intent:   "list",
		triggers: []string{"list", "show", "all", "my tasks"},
		reply:    "All your tasks are displayed in the Tasks tab. You can filter them by status!",
	},
	{
		intent:   "delete",
		triggers: []string{"delete", "remove"},
		reply:    "You can delete tasks by clicking the delete button on each task card.",
	},
	{
		intent:   "update",
		triggers: []string{"update", "edit", "change"},
		reply:    "You can update task status using the dropdown on each task.",
	},
	{
		intent:   "help",
		triggers: []string{"help", "how", "what can you do"},
		reply: "I can help you with:\n" +
			"• Creating tasks\n" +
			"• Listing your tasks\n" +
			"• Updating task status\n" +
			"• Deleting tasks\n\n" +
			"What would you like to do?",
	},
	{
		intent:   "greeting",
		triggers: []string{"hello", "hi", "hey"},
		reply:    "Hello! 👋 I'm your task assistant. How can I help you manage your tasks today?",
	},
}

func normalizeMessage(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

func matchCategory(message string) (replyCategory, bool) {
	normalized := normalizeMessage(message)
	for _, category := range replyCategories {
		for _, trigger := range category.triggers {
			if strings.Contains(normalized, trigger) {
				return category, true
			}
		}
	}
	return replyCategory{}, false
}

// MatchIntent names the category SelectReply would answer with.
func MatchIntent(message string) string {
	if category, ok := matchCategory(message); ok {
		return category.intent
	}
	return IntentFallback
}

// SelectReply maps a chat message to a canned reply. It is pure and safe for
// concurrent use. Blank input is rejected by callers, not here.
func SelectReply(message string) string {
	if category, ok := matchCategory(message); ok {
		return category.reply
	}
	return fmt.Sprintf("You said: \"%s\"\n\nI'm learning to understand task commands better. Try asking me to create, list, or manage your tasks!", message)
}
