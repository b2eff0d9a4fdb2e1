package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

var validDrivers = map[string]bool{
	"postgres": true,
	"sqlite":   true,
}

type Config struct {
	ServerPort string
	AppEnv     string
	LogLevel   string
	DB         DBConfig
	Slack      SlackConfig
	Todoist    TodoistConfig
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidateDB checks only what is needed to reach the database.
func (c Config) ValidateDB() error {
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if !validDrivers[c.DB.Driver] {
		return fmt.Errorf("invalid DB_DRIVER %q: must be one of postgres, sqlite", c.DB.Driver)
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if err := c.ValidateDB(); err != nil {
		return err
	}
	if c.Slack.VerifyDisabled && c.AppEnv != "local" {
		return fmt.Errorf("SLACK_VERIFY_DISABLED must not be enabled in %s environment", c.AppEnv)
	}
	if c.Slack.BotToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if !c.Slack.VerifyDisabled && c.Slack.SigningSecret == "" {
		return fmt.Errorf("SLACK_SIGNING_SECRET is required when SLACK_VERIFY_DISABLED is off")
	}
	if c.Todoist.ClientID == "" || c.Todoist.ClientSecret == "" {
		return fmt.Errorf("TODOIST_CLIENT_ID and TODOIST_CLIENT_SECRET are required")
	}
	if c.Todoist.StateSecret == "" {
		return fmt.Errorf("OAUTH_STATE_SECRET is required")
	}
	return nil
}

// ValidateSocket checks the extra settings needed to run over socket mode.
func (c Config) ValidateSocket() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Slack.AppToken, "xapp-") {
		return fmt.Errorf("SLACK_APP_TOKEN must be set and start with xapp- for socket mode")
	}
	return nil
}

type DBConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// DSN returns the data source name for the configured driver.
func (d DBConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.SQLitePath
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

type SlackConfig struct {
	BotToken       string
	AppToken       string
	SigningSecret  string
	VerifyDisabled bool
	Debug          bool
}

type TodoistConfig struct {
	APIURL       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	StateSecret  string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present; set GODOTENV_DISABLE
// to skip it.
func Load() Config {
	if os.Getenv("GODOTENV_DISABLE") == "" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to load .env", "error", err)
		}
	}

	return Config{
		ServerPort: envOrDefault("SERVER_PORT", "8080"),
		AppEnv:     envOrDefault("APP_ENV", "local"),
		LogLevel:   envOrDefault("LOG_LEVEL", "info"),
		DB: DBConfig{
			Driver:     envOrDefault("DB_DRIVER", "postgres"),
			Host:       envOrDefault("DB_HOST", "localhost"),
			Port:       envOrDefault("DB_PORT", "5432"),
			User:       envOrDefault("DB_USER", "todoist"),
			Password:   envOrDefault("DB_PASSWORD", "todoist"),
			Name:       envOrDefault("DB_NAME", "todoist"),
			SSLMode:    envOrDefault("DB_SSLMODE", "disable"),
			SQLitePath: envOrDefault("SQLITE_PATH", "todoist.db"),
		},
		Slack: SlackConfig{
			BotToken:       os.Getenv("SLACK_BOT_TOKEN"),
			AppToken:       os.Getenv("SLACK_APP_TOKEN"),
			SigningSecret:  os.Getenv("SLACK_SIGNING_SECRET"),
			VerifyDisabled: envBool("SLACK_VERIFY_DISABLED", false),
			Debug:          envBool("SLACK_DEBUG", false),
		},
		Todoist: TodoistConfig{
			APIURL:       envOrDefault("TODOIST_API_URL", "https://api.todoist.com/rest/v2"),
			ClientID:     os.Getenv("TODOIST_CLIENT_ID"),
			ClientSecret: os.Getenv("TODOIST_CLIENT_SECRET"),
			RedirectURL:  envOrDefault("TODOIST_REDIRECT_URL", "http://localhost:8080/oauth/callback"),
			StateSecret:  os.Getenv("OAUTH_STATE_SECRET"),
		},
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return defaultVal
}
