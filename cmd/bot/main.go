package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tg-assistant/internal/config"
	"tg-assistant/internal/history"
	"tg-assistant/internal/llm"
	"tg-assistant/internal/prompt"
	"tg-assistant/internal/scheduler"
	"tg-assistant/internal/speech"
	"tg-assistant/internal/storage"
	"tg-assistant/internal/telegram"
	"tg-assistant/internal/video"
	"tg-assistant/internal/vision"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	promptRepo, err := prompt.NewFileRepository(cfg.PromptsFilePath)
	if err != nil {
		log.Fatalf("failed to init prompt store: %v", err)
	}

	memoryRepo, err := history.NewFileRepository(cfg.MemoryFilePath)
	if err != nil {
		log.Fatalf("failed to init memory store: %v", err)
	}
	memory, err := history.NewStore(memoryRepo, cfg.HistoryLimit)
	if err != nil {
		log.Fatalf("failed to load memory store: %v", err)
	}

	llmClient, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider))
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	systemPrompt := readSystemPrompt(cfg.SystemPromptPath)

	recognizer := speech.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.SpeechModel, cfg.SpeechLanguage)
	extractor := vision.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.VisionModel, cfg.OCRLanguages)
	sampler := video.NewFFmpeg(cfg.FFmpegPath, cfg.FFprobePath)

	var rec storage.Recorder
	if cfg.LogFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.LogFilePath)
		if err != nil {
			log.Printf("failed to init file recorder: %v", err)
		} else {
			rec = fr
		}
	}

	if rec != nil {
		sch := scheduler.New(func(ctx context.Context) error {
			report, err := storage.DailyReport(rec, time.Now().UTC().Add(-24*time.Hour))
			if err != nil {
				return err
			}
			log.Printf("daily activity: %s", report)
			return nil
		})
		if err := sch.Start(); err != nil {
			log.Printf("failed to start scheduler: %v", err)
		}
		defer sch.Stop()
	}

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		llmClient,
		promptRepo,
		memory,
		recognizer,
		extractor,
		sampler,
		rec,
		systemPrompt,
		cfg.MessageParseMode,
		cfg.MaxMessageLen,
		cfg.ReplyPartLabels,
		cfg.ChangelogPath,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	bot.Start(context.Background())
}

func readSystemPrompt(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s: %v", path, err)
		return ""
	}
	return string(data)
}
