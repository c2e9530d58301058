package config

import (
	"testing"

	"github.com/nalgeon/be"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "MODEL_NAME",
		"GMAIL_CREDENTIALS_PATH", "GMAIL_TOKEN_PATH", "GMAIL_USER", "HUMAN_LABEL_NAME",
		"GOOGLE_CLOUD_PROJECT", "SUBSCRIPTION_ID", "TOPIC_NAME",
		"MAX_EMAILS", "REPORT_DB_PATH", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := FromEnv()
	be.Err(t, err, nil)

	be.Equal(t, cfg.OpenAIAPIKey, "sk-test")
	be.Equal(t, cfg.ModelName, "gpt-4o-mini")
	be.Equal(t, cfg.CredentialsPath, "credentials.json")
	be.Equal(t, cfg.TokenPath, "token.json")
	be.Equal(t, cfg.GmailUser, "me")
	be.Equal(t, cfg.HumanLabelName, "NEEDS_HUMAN_RESPONSE")
	be.Equal(t, cfg.MaxEmails, int64(10))
	be.Equal(t, cfg.ReportDBPath, "")
	be.Equal(t, cfg.TopicName, "")
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MODEL_NAME", "gpt-3.5-turbo")
	t.Setenv("MAX_EMAILS", "25")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "acme")
	t.Setenv("SUBSCRIPTION_ID", "gmail-sub")
	t.Setenv("REPORT_DB_PATH", "runs.db")

	cfg, err := FromEnv()
	be.Err(t, err, nil)

	be.Equal(t, cfg.ModelName, "gpt-3.5-turbo")
	be.Equal(t, cfg.MaxEmails, int64(25))
	be.Equal(t, cfg.TopicName, "projects/acme/topics/gmail-topic")
	be.Equal(t, cfg.ReportDBPath, "runs.db")
	be.Err(t, cfg.ValidateWatch(), nil)
}

func TestFromEnvRequiresAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := FromEnv()
	be.Err(t, err, "OPENAI_API_KEY is required")
}

func TestFromEnvRejectsBadMaxEmails(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	t.Setenv("MAX_EMAILS", "ten")
	_, err := FromEnv()
	be.Err(t, err, "MAX_EMAILS")

	t.Setenv("MAX_EMAILS", "0")
	_, err = FromEnv()
	be.Err(t, err, "must be positive")
}

func TestValidateWatch(t *testing.T) {
	cfg := &Config{GoogleCloudProject: "acme"}
	be.Err(t, cfg.ValidateWatch(), "SUBSCRIPTION_ID is required")

	cfg = &Config{SubscriptionID: "sub"}
	be.Err(t, cfg.ValidateWatch(), "GOOGLE_CLOUD_PROJECT is required")
}
