package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jack-T524/oms/pkg/utils"
)

type Config struct {
	Env     string  `yaml:"env" env:"ENV" env-default:"local"`
	Log     Log     `yaml:"log"`
	HTTP    HTTP    `yaml:"http"`
	Metrics Metrics `yaml:"metrics"`
	Auth    Auth    `yaml:"auth"`
	Store   Store   `yaml:"store"`
	Limiter Limiter `yaml:"limiter"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTP struct {
	Port    string        `yaml:"port" env:"HTTP_PORT" env-default:":3000"`
	Timeout time.Duration `yaml:"timeout" env-default:"4s"`
}

type Metrics struct {
	Port string `yaml:"port" env:"METRICS_PORT" env-default:":9091"`
}

// Auth carries the single shared operator credential.
type Auth struct {
	Token string `yaml:"token" env:"API_TOKEN"`
}

type Store struct {
	Backend  string `yaml:"backend" env:"STORE_BACKEND" env-default:"memory"`
	Sheets   Sheets `yaml:"sheets"`
	Postgres PG     `yaml:"postgres"`
}

type Sheets struct {
	SpreadsheetID   string `yaml:"spreadsheet_id" env:"SHEETS_SPREADSHEET_ID"`
	CredentialsFile string `yaml:"credentials_file" env:"SHEETS_CREDENTIALS_FILE"`
}

type PG struct {
	URL            string `yaml:"url" env:"DB_URL"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
}

type Limiter struct {
	Max        int           `yaml:"max" env-default:"20"`
	Expiration time.Duration `yaml:"expiration" env-default:"5s"`
}

func MustLoad() *Config {
	configPath := utils.ParseWithFallback("CONFIG_PATH", "./config/local.yaml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exists: %v\n", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("error reading config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	return &cfg
}

// Validate rejects configs that would start the server in an unusable or
// unsafe state. An empty auth token would make every bearer token match.
func (c *Config) Validate() error {
	if c.Auth.Token == "" {
		return errors.New("auth token must not be empty")
	}
	return nil
}
