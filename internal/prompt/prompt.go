package prompt

// Repository persists per-chat system prompt overrides.
// Absence of an override means the base system prompt is used as-is.
type Repository interface {
	Get(chatID string) (string, bool)
	Set(chatID, text string) error
	// Clear removes the override. The bool reports whether one existed.
	Clear(chatID string) (bool, error)
}

// Effective returns the system prompt for a chat: the base prompt,
// supplemented (never replaced) by the chat override when one is set.
// The override is used verbatim, exactly as stored.
func Effective(base, override string) string {
	switch {
	case override == "":
		return base
	case base == "":
		return override
	default:
		return base + "\n\n" + override
	}
}

// Compose builds the final request text for the completion call.
// historyPrompt is the rendered conversation (already ending with the
// "Assistant:" cue); it comes after the system instructions.
func Compose(base, override, historyPrompt string) string {
	system := Effective(base, override)
	if historyPrompt == "" {
		return system
	}
	if system == "" {
		return historyPrompt
	}
	return system + "\n\n" + historyPrompt
}
