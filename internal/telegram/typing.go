package telegram

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram expires a chat action after ~5 seconds; refresh just under that.
const typingInterval = 4 * time.Second

// startTyping keeps the "typing" chat action alive in the background
// until the returned stop function is called. Stop waits for the worker
// to finish. Action send failures are ignored.
func (b *Bot) startTyping(chatID int64) func() {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		t := time.NewTicker(typingInterval)
		defer t.Stop()
		b.sendTypingAction(chatID)
		for {
			select {
			case <-done:
				return
			case <-t.C:
				b.sendTypingAction(chatID)
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}

func (b *Bot) sendTypingAction(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	_, _ = b.s.Request(action)
}
