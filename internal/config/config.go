package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Media processing
	SpeechModel    string `env:"SPEECH_MODEL" envDefault:"whisper-1"`
	SpeechLanguage string `env:"SPEECH_LANGUAGE" envDefault:"ru"`
	VisionModel    string `env:"VISION_MODEL" envDefault:"gpt-4o-mini"`
	OCRLanguages   string `env:"OCR_LANGUAGES" envDefault:"ru,en"`
	FFmpegPath     string `env:"FFMPEG_PATH" envDefault:"ffmpeg"`
	FFprobePath    string `env:"FFPROBE_PATH" envDefault:"ffprobe"`

	// Prompts
	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH" envDefault:"prompts/system_prompt.txt"`

	// Storage
	PromptsFilePath string `env:"PROMPTS_FILE_PATH" envDefault:"data/prompts.json"`
	MemoryFilePath  string `env:"MEMORY_FILE_PATH" envDefault:"data/memory.json"`
	LogFilePath     string `env:"LOG_FILE_PATH" envDefault:"logs/log.jsonl"`
	ChangelogPath   string `env:"CHANGELOG_PATH" envDefault:"CHANGELOG.md"`

	// Conversation
	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"10"`

	// Formatting
	MessageParseMode string `env:"MESSAGE_PARSE_MODE" envDefault:"HTML"`
	MaxMessageLen    int    `env:"MAX_MESSAGE_LEN" envDefault:"4000"`
	ReplyPartLabels  bool   `env:"REPLY_PART_LABELS" envDefault:"false"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
