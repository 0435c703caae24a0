package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// DataSource описывает, откуда сервис читает записи.
type DataSource struct {
	Kind string `json:"kind" yaml:"kind"`
	Path string `json:"path" yaml:"path"`
	DSN  string `json:"dsn" yaml:"dsn"`
}

// Config хранит настройки источника данных, HTTP-сервера и логирования.
type Config struct {
	DataSource    DataSource `json:"data_source" yaml:"data_source"`
	HTTPAddr      string     `json:"http_addr" yaml:"http_addr"`
	StrictNumeric bool       `json:"strict_numeric" yaml:"strict_numeric"`
	LogLevel      string     `json:"log_level" yaml:"log_level"`
}

// Default возвращает конфигурацию по умолчанию: файл jsondata.json рядом с бинарником.
func Default() *Config {
	return &Config{
		DataSource: DataSource{
			Kind: SourceFile,
			Path: "jsondata.json",
		},
		HTTPAddr: ":8000",
		LogLevel: "info",
	}
}

// Validate проверяет тип источника и наличие пути или строки подключения.
func (cfg *Config) Validate() error {
	switch cfg.DataSource.Kind {
	case SourceFile:
		if cfg.DataSource.Path == "" {
			return errors.New("data source path must be set for kind \"file\"")
		}
	case SourcePostgres:
		if cfg.DataSource.DSN == "" {
			return errors.New("data source dsn must be set for kind \"postgres\"")
		}
	default:
		return fmt.Errorf("unknown data source kind: %q", cfg.DataSource.Kind)
	}
	if cfg.HTTPAddr == "" {
		return errors.New("http addr must be set")
	}
	return nil
}

// LoadConfig читает JSON- или YAML-файл по пути path поверх значений по умолчанию.
// Формат определяется по расширению.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Load собирает итоговую конфигурацию: файл (если есть), затем .env и переменные окружения.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		switch {
		case err == nil:
			cfg = fileCfg
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	if v := os.Getenv("DATA_SOURCE_KIND"); v != "" {
		cfg.DataSource.Kind = v
	}
	if v := os.Getenv("DATA_SOURCE_PATH"); v != "" {
		cfg.DataSource.Path = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DataSource.DSN = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STRICT_NUMERIC"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid STRICT_NUMERIC: %q", v)
		}
		cfg.StrictNumeric = strict
	}
	return nil
}
