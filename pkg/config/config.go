package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/eurekai25/prospecting-engine/pkg/database"
)

// Config is the umbrella configuration object for the prospecting engine,
// assembled once at startup and passed down to every component that needs
// it instead of each package reading the environment on its own.
type Config struct {
	// LLM provider credentials. A blank key leaves that model's adapter out
	// of the llmadapter registry, so live test runs skip it rather than
	// erroring.
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string

	Database database.Config

	// AdminToken gates the /admin/* routes. Empty means the admin check
	// falls back to api.DefaultAdminToken.
	AdminToken string

	// BaseURL is the public origin used to build landing-page and send-queue
	// links (e.g. "https://app.example.com").
	BaseURL string

	// SenderSignature appears at the foot of generated emails.
	SenderSignature string

	// SendQueueDir is the on-disk staging directory the Deliverable
	// Generator writes per-prospect artifacts and the timestamped
	// send-queue CSV under.
	SendQueueDir string

	// QueryBankOverridesPath optionally points at a YAML file that replaces
	// or extends the built-in per-profession query templates. Empty means
	// only the built-in bank is used.
	QueryBankOverridesPath string

	// CampaignConcurrency bounds how many prospects a single campaign sweep
	// tests in parallel. See pkg/testrunner.DefaultCampaignConcurrency.
	CampaignConcurrency int
}

// Load builds a Config from the process environment, applying the same
// defaults the prospecting engine is deployed with when a variable is unset.
func Load() (*Config, error) {
	dbCfg, err := database.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("database config: %w", err)
	}

	cfg := &Config{
		OpenAIAPIKey:           os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:        os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		Database:               dbCfg,
		AdminToken:             os.Getenv("ADMIN_TOKEN"),
		BaseURL:                envOr("BASE_URL", "http://localhost:8000"),
		SenderSignature:        envOr("SENDER_SIGNATURE", "L'équipe EURKAI"),
		SendQueueDir:           envOr("SEND_QUEUE_DIR", "send_queue"),
		QueryBankOverridesPath: os.Getenv("QUERYBANK_OVERRIDES_PATH"),
		CampaignConcurrency:    envIntOr("CAMPAIGN_CONCURRENCY", 4),
	}
	return cfg, nil
}

// Stats summarizes which optional components are configured, for startup
// logging.
type Stats struct {
	OpenAIConfigured    bool
	AnthropicConfigured bool
	GeminiConfigured    bool
	AdminEnabled        bool
	QueryBankOverridden bool
}

func (c *Config) Stats() Stats {
	return Stats{
		OpenAIConfigured:    c.OpenAIAPIKey != "",
		AnthropicConfigured: c.AnthropicAPIKey != "",
		GeminiConfigured:    c.GeminiAPIKey != "",
		AdminEnabled:        c.AdminToken != "",
		QueryBankOverridden: c.QueryBankOverridesPath != "",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
