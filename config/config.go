package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Configuration struct {
	ApiPort   string `json:"api_port"`
	LogLevel  string `json:"log_level"`  // debug|info|warn|error
	LogFormat string `json:"log_format"` // text|json

	Database    string `json:"database"` // "sqlite3" ou "postgres"
	DbPath      string `json:"db_path"`
	DbHost      string `json:"db_host"`
	DbPort      string `json:"db_port"`
	DbUser      string `json:"db_user"`
	DbName      string `json:"db_name"`
	DbPass      string `json:"db_pass"`
	DbLog       bool   `json:"db_log"`
	AutoMigrate bool   `json:"auto_migrate"`

	Asaas struct {
		ApiURL       string `json:"api_url"`
		ApiKey       string `json:"api_key"`
		WebhookToken string `json:"webhook_token"`
	} `json:"asaas"`

	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// BillingSyncInterval liga o worker de sincronização com a Asaas.
	// Zero (padrão) mantém apenas a sincronização sob demanda (GET /api/billing?sync=true).
	BillingSyncInterval Duration `json:"billing_sync_interval"`
}

// Duration aceita "30s", "5m" etc. no arquivo JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Get lê o arquivo JSON (se existir), carrega um .env opcional e aplica overrides
// de ambiente. Um arquivo ausente não é erro: tudo pode vir do ambiente.
func Get(path string) (Configuration, error) {
	var c Configuration

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(b, &c); err != nil {
				return c, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// .env é opcional (dev local)
	_ = godotenv.Load()

	applyEnv(&c)
	applyDefaults(&c)

	return c, nil
}

func applyEnv(c *Configuration) {
	c.ApiPort = getenv("PORT", c.ApiPort)
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getenv("LOG_FORMAT", c.LogFormat)

	c.Database = getenv("DATABASE", c.Database)
	c.DbPath = getenv("DB_PATH", c.DbPath)
	c.DbHost = getenv("DB_HOST", c.DbHost)
	c.DbPort = getenv("DB_PORT", c.DbPort)
	c.DbUser = getenv("DB_USER", c.DbUser)
	c.DbName = getenv("DB_NAME", c.DbName)
	c.DbPass = getenv("DB_PASS", c.DbPass)
	c.DbLog = getenvBool("DB_LOG", c.DbLog)
	c.AutoMigrate = getenvBool("AUTOMIGRATE", c.AutoMigrate)

	c.Asaas.ApiURL = getenv("ASAAS_API_URL", c.Asaas.ApiURL)
	c.Asaas.ApiKey = getenv("ASAAS_API_KEY", c.Asaas.ApiKey)
	c.Asaas.WebhookToken = getenv("ASAAS_WEBHOOK_TOKEN", c.Asaas.WebhookToken)

	c.RateLimitPerMinute = getenvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)
	if v := strings.TrimSpace(os.Getenv("BILLING_SYNC_INTERVAL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.BillingSyncInterval = Duration(d)
		}
	}
}

// defaults (pra evitar nil/zero chato)
func applyDefaults(c *Configuration) {
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.DbPath == "" {
		c.DbPath = "db/database.db"
	}
	if c.DbPort == "" {
		c.DbPort = "5432"
	}
	if c.Asaas.ApiURL == "" {
		c.Asaas.ApiURL = "https://www.asaas.com/api/v3"
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 120
	}
}

// Validate retorna todos os problemas de configuração de uma vez.
func (c Configuration) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.ApiPort); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.ApiPort))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch strings.ToLower(c.Database) {
	case "sqlite3":
		if c.DbPath == "" {
			problems = append(problems, "db_path cannot be empty when using sqlite3")
		}
	case "postgres", "postgresql":
		if c.DbHost == "" || c.DbName == "" || c.DbUser == "" {
			problems = append(problems, "db_host, db_name and db_user are required when using postgres")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid database '%s': must be sqlite3 or postgres", c.Database))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if u, err := url.Parse(c.Asaas.ApiURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid asaas api url '%s'", c.Asaas.ApiURL))
	}

	if c.RateLimitPerMinute < 0 {
		problems = append(problems, fmt.Sprintf("invalid rate limit %d: must not be negative", c.RateLimitPerMinute))
	}
	if c.BillingSyncInterval < 0 {
		problems = append(problems, "billing_sync_interval must not be negative")
	} else if d := time.Duration(c.BillingSyncInterval); d > 0 && d < 10*time.Second {
		problems = append(problems, fmt.Sprintf("billing_sync_interval %v too short: minimum is 10s", d))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	s := getenv(k, "")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	s := getenv(k, "")
	if s == "" {
		return def
	}
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return def
}
