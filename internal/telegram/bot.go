package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tg-assistant/internal/history"
	"tg-assistant/internal/llm"
	"tg-assistant/internal/prompt"
	"tg-assistant/internal/speech"
	"tg-assistant/internal/storage"
	"tg-assistant/internal/video"
	"tg-assistant/internal/vision"
)

const Version = "2.3.2"

// Fixed user-facing replies for media that could not be processed.
// These paths never reach the model.
const (
	msgSpeechNotUnderstood = "Не понял речь 😅"
	msgNoTextFound         = "Текст не найден 🤷"
	msgMediaFailed         = "Не получилось обработать файл 😔"
	msgVideoFailed         = "Не получилось обработать видео 😔"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	s         sender
	llmClient llm.Client

	prompts  prompt.Repository
	memory   *history.Store
	recorder storage.Recorder

	recognizer speech.Recognizer
	extractor  vision.Extractor
	sampler    video.Sampler

	systemPrompt    string
	parseMode       string
	maxMessageLen   int
	replyPartLabels bool
	changelogPath   string

	// download fetches a Telegram file by id; replaceable in tests.
	download func(fileID string) ([]byte, error)
}

func New(
	botToken string,
	llmClient llm.Client,
	prompts prompt.Repository,
	memory *history.Store,
	recognizer speech.Recognizer,
	extractor vision.Extractor,
	sampler video.Sampler,
	recorder storage.Recorder,
	systemPrompt string,
	parseMode string,
	maxMessageLen int,
	replyPartLabels bool,
	changelogPath string,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	b := &Bot{
		api:             api,
		s:               botAPISender{api: api},
		llmClient:       llmClient,
		prompts:         prompts,
		memory:          memory,
		recognizer:      recognizer,
		extractor:       extractor,
		sampler:         sampler,
		recorder:        recorder,
		systemPrompt:    systemPrompt,
		parseMode:       parseMode,
		maxMessageLen:   maxMessageLen,
		replyPartLabels: replyPartLabels,
		changelogPath:   changelogPath,
	}
	b.download = b.downloadFile
	return b, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	log.Printf("bot started, version %s", Version)
	for update := range updates {
		if update.Message != nil {
			b.handleIncomingMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	// The typing indicator covers the whole processing window: media
	// download, transcription, frame sampling, OCR and the completion
	// call. Stopped cooperatively once the handler returns.
	stop := b.startTyping(msg.Chat.ID)
	defer stop()

	switch {
	case msg.Voice != nil || msg.Audio != nil:
		b.handleVoice(ctx, msg)
	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, msg)
	case msg.Video != nil:
		b.handleVideo(ctx, msg)
	case msg.Text != "":
		log.Printf("Incoming message from %d (@%s): %q", msg.From.ID, msg.From.UserName, msg.Text)
		reply := b.answer(ctx, msg.Chat.ID, msg.From.ID, "text", msg.Text)
		b.sendLong(msg.Chat.ID, reply)
	}
}

// answer runs the main path for normalized text: record the user turn,
// compose the prompt, call the model and record the assistant turn. A
// completion failure becomes an in-band error string so the user always
// gets exactly one reply.
func (b *Bot) answer(ctx context.Context, chatID, userID int64, source, text string) string {
	userKey := strconv.FormatInt(userID, 10)
	chatKey := strconv.FormatInt(chatID, 10)

	// The user turn is recorded before the completion call, so a crash
	// mid-call still leaves it in history.
	if err := b.memory.Append(userKey, history.RoleUser, text); err != nil {
		log.Printf("failed to persist user turn: %v", err)
	}

	override, _ := b.prompts.Get(chatKey)
	composed := prompt.Compose(b.systemPrompt, override, b.memory.Prompt(userKey))

	var reply string
	resp, err := b.llmClient.Complete(ctx, composed)
	if err != nil {
		log.Printf("completion failed: %v", err)
		reply = fmt.Sprintf("(Ошибка: %v)", err)
	} else {
		reply = resp.Content
		log.Printf("LLM response [model=%s, tokens: prompt=%d, completion=%d, total=%d]",
			resp.Model, resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens)
	}

	// Error strings are stored too: they stay part of the conversation.
	if err := b.memory.Append(userKey, history.RoleAssistant, reply); err != nil {
		log.Printf("failed to persist assistant turn: %v", err)
	}
	b.record(userID, chatID, source, text, reply)
	return reply
}

func (b *Bot) record(userID, chatID int64, source, userMsg, reply string) {
	if b.recorder == nil {
		return
	}
	ev := storage.Event{
		Timestamp:         time.Now().UTC(),
		UserID:            userID,
		ChatID:            chatID,
		Source:            source,
		UserMessage:       userMsg,
		AssistantResponse: reply,
	}
	if err := b.recorder.AppendInteraction(ev); err != nil {
		log.Printf("failed to record interaction: %v", err)
	}
}

// sendLong delivers text in order, split to the transport-safe segment
// size, using the configured parse mode.
func (b *Bot) sendLong(chatID int64, text string) {
	b.sendLongMode(chatID, text, b.parseMode)
}

// sendLongPlain is for verbatim dumps (help, changelog) that may contain
// characters the markup parser would reject.
func (b *Bot) sendLongPlain(chatID int64, text string) {
	b.sendLongMode(chatID, text, "")
}

func (b *Bot) sendLongMode(chatID int64, text, parseMode string) {
	parts := splitReply(text, b.maxMessageLen)
	if b.replyPartLabels {
		parts = labelParts(parts)
	}
	for _, p := range parts {
		msg := tgbotapi.NewMessage(chatID, p)
		msg.ParseMode = parseMode
		if _, err := b.s.Send(msg); err != nil {
			log.Printf("failed to send message: %v", err)
		}
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = b.parseMode
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file: %w", err)
	}
	resp, err := http.Get(file.Link(b.api.Token))
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	return data, nil
}
