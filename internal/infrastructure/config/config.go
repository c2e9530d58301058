package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultHumanLabel = "NEEDS_HUMAN_RESPONSE"

type Config struct {
	// OpenAI
	OpenAIAPIKey  string
	OpenAIBaseURL string
	ModelName     string

	// Gmail
	CredentialsPath string
	TokenPath       string
	GmailUser       string
	HumanLabelName  string

	// Google Cloud, watch mode only
	GoogleCloudProject string
	SubscriptionID     string
	TopicName          string

	// App settings
	MaxEmails    int64
	ReportDBPath string
	LogFile      string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),
		ModelName:          getEnv("MODEL_NAME", "gpt-4o-mini"),
		CredentialsPath:    getEnv("GMAIL_CREDENTIALS_PATH", "credentials.json"),
		TokenPath:          getEnv("GMAIL_TOKEN_PATH", "token.json"),
		GmailUser:          getEnv("GMAIL_USER", "me"),
		HumanLabelName:     getEnv("HUMAN_LABEL_NAME", defaultHumanLabel),
		GoogleCloudProject: getEnv("GOOGLE_CLOUD_PROJECT", ""),
		SubscriptionID:     getEnv("SUBSCRIPTION_ID", ""),
		TopicName:          getEnv("TOPIC_NAME", ""),
		ReportDBPath:       getEnv("REPORT_DB_PATH", ""),
		LogFile:            getEnv("LOG_FILE", ""),
	}

	maxEmails, err := getEnvInt64("MAX_EMAILS", 10)
	if err != nil {
		return nil, err
	}
	cfg.MaxEmails = maxEmails

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.MaxEmails <= 0 {
		return nil, fmt.Errorf("MAX_EMAILS must be positive, got %d", cfg.MaxEmails)
	}

	if cfg.TopicName == "" && cfg.GoogleCloudProject != "" {
		cfg.TopicName = fmt.Sprintf("projects/%s/topics/gmail-topic", cfg.GoogleCloudProject)
	}

	return cfg, nil
}

// ValidateWatch checks the settings push notifications need.
func (c *Config) ValidateWatch() error {
	if c.GoogleCloudProject == "" {
		return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required")
	}
	if c.SubscriptionID == "" {
		return fmt.Errorf("SUBSCRIPTION_ID is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
