package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type CurrencyConfig struct {
	Env         string `yaml:"env" env-default:"local"`
	HTTPServer  `yaml:"http_server"`
	CurrencyDB  `yaml:"currency_db"`
	Redis       `yaml:"redis"`
	CBRProvider `yaml:"cbr_provider"`
	Sync        `yaml:"sync"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type CurrencyDB struct {
	Dsn            string `yaml:"dsn" env:"CURRENCY_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env-default:"migrations"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"127.0.0.1"`
	Port string `yaml:"port" env-default:"6379"`
}

type CBRProvider struct {
	URL            string        `yaml:"url" env-default:"https://www.cbr-xml-daily.ru/daily_json.js"`
	RequestTimeout time.Duration `yaml:"request_timeout" env-default:"30s"`
}

type Sync struct {
	Interval time.Duration `yaml:"interval" env-default:"30s"`
}

func MustLoad() *CurrencyConfig {

	// Processing env config variable and file
	configPath := os.Getenv("CURRENCY_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("CURRENCY_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg CurrencyConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
