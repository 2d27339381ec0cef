package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"os"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tg-assistant/internal/prompt"
	"tg-assistant/internal/speech"
)

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	chatKey := strconv.FormatInt(msg.Chat.ID, 10)
	userKey := strconv.FormatInt(msg.From.ID, 10)

	switch msg.Command() {
	case "start", "help":
		b.handleHelp(msg, chatKey)
	case "setprompt":
		text := strings.TrimSpace(msg.CommandArguments())
		if text == "" {
			b.sendMessage(msg.Chat.ID, "Использование: /setprompt <текст промпта>")
			return
		}
		if err := b.prompts.Set(chatKey, text); err != nil {
			log.Printf("failed to set prompt override: %v", err)
			b.sendMessage(msg.Chat.ID, "Не удалось сохранить промпт 😔")
			return
		}
		b.sendMessage(msg.Chat.ID, "Промпт для этого чата обновлён ✅")
	case "clearprompt":
		removed, err := b.prompts.Clear(chatKey)
		if err != nil {
			log.Printf("failed to clear prompt override: %v", err)
			b.sendMessage(msg.Chat.ID, "Не удалось сбросить промпт 😔")
			return
		}
		if removed {
			b.sendMessage(msg.Chat.ID, "Промпт сброшен, используется стандартный ✅")
		} else {
			b.sendMessage(msg.Chat.ID, "Для этого чата и так используется стандартный промпт")
		}
	case "clear_memory":
		if err := b.memory.Clear(userKey); err != nil {
			log.Printf("failed to clear memory: %v", err)
			b.sendMessage(msg.Chat.ID, "Не удалось очистить историю 😔")
			return
		}
		b.sendMessage(msg.Chat.ID, "История диалога очищена 🧹")
	case "changelog":
		data, err := os.ReadFile(b.changelogPath)
		if err != nil {
			log.Printf("changelog not readable at %s: %v", b.changelogPath, err)
			b.sendMessage(msg.Chat.ID, "Changelog недоступен")
			return
		}
		b.sendLongPlain(msg.Chat.ID, string(data))
	default:
		b.sendMessage(msg.Chat.ID, "Неизвестная команда. Попробуй /help")
	}
}

func (b *Bot) handleHelp(msg *tgbotapi.Message, chatKey string) {
	override, _ := b.prompts.Get(chatKey)
	effective := prompt.Effective(b.systemPrompt, override)

	var bld strings.Builder
	fmt.Fprintf(&bld, "🤖 Ассистент v%s\n\n", Version)
	bld.WriteString("Присылай текст, голосовые, фото или видео — отвечу с помощью нейросети.\n\n")
	bld.WriteString("Команды:\n")
	bld.WriteString("/setprompt <текст> — свой промпт для этого чата\n")
	bld.WriteString("/clearprompt — вернуть стандартный промпт\n")
	bld.WriteString("/clear_memory — очистить историю диалога\n")
	bld.WriteString("/changelog — история изменений\n\n")
	bld.WriteString("Текущий промпт:\n")
	bld.WriteString(effective)
	b.sendLongPlain(msg.Chat.ID, bld.String())
}

func (b *Bot) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	fileID := ""
	filename := "voice.ogg"
	if msg.Voice != nil {
		fileID = msg.Voice.FileID
	} else if msg.Audio != nil {
		fileID = msg.Audio.FileID
		if msg.Audio.FileName != "" {
			filename = msg.Audio.FileName
		}
	}

	data, err := b.download(fileID)
	if err != nil {
		log.Printf("failed to download audio: %v", err)
		b.sendMessage(msg.Chat.ID, msgMediaFailed)
		return
	}

	text, err := b.recognizer.Transcribe(ctx, data, filename)
	if err != nil {
		if !errors.Is(err, speech.ErrNotUnderstood) {
			log.Printf("transcription failed: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgSpeechNotUnderstood)
		return
	}
	log.Printf("Transcribed voice from %d: %q", msg.From.ID, text)

	reply := b.answer(ctx, msg.Chat.ID, msg.From.ID, "voice", text)
	b.sendLong(msg.Chat.ID, fmt.Sprintf("🎤 Ты сказал: <i>%s</i>\n\n%s", html.EscapeString(text), reply))
}

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	// The largest rendition comes last.
	sizes := msg.Photo
	fileID := sizes[len(sizes)-1].FileID

	data, err := b.download(fileID)
	if err != nil {
		log.Printf("failed to download photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgMediaFailed)
		return
	}
	b.extractAndAnswer(ctx, msg, data, "photo")
}

func (b *Bot) handleVideo(ctx context.Context, msg *tgbotapi.Message) {
	data, err := b.download(msg.Video.FileID)
	if err != nil {
		log.Printf("failed to download video: %v", err)
		b.sendMessage(msg.Chat.ID, msgVideoFailed)
		return
	}

	frame, err := b.sampler.MidFrame(ctx, data)
	if err != nil {
		log.Printf("frame sampling failed: %v", err)
		b.sendMessage(msg.Chat.ID, msgVideoFailed)
		return
	}
	b.extractAndAnswer(ctx, msg, frame, "video")
}

// extractAndAnswer runs OCR on an image and, when text is found, puts
// it through the normal text path. An empty extraction never reaches
// the model and never touches history.
func (b *Bot) extractAndAnswer(ctx context.Context, msg *tgbotapi.Message, image []byte, source string) {
	text, err := b.extractor.Extract(ctx, image)
	if err != nil {
		log.Printf("text extraction failed: %v", err)
		b.sendMessage(msg.Chat.ID, msgMediaFailed)
		return
	}
	if strings.TrimSpace(text) == "" {
		b.sendMessage(msg.Chat.ID, msgNoTextFound)
		return
	}
	log.Printf("Extracted text from %s (%d): %q", source, msg.From.ID, text)

	reply := b.answer(ctx, msg.Chat.ID, msg.From.ID, source, "Текст с картинки:\n"+text)
	b.sendLong(msg.Chat.ID, reply)
}
