package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"minoj/internal/judge/catalog"
	"minoj/pkg/utils/logger"
)

const (
	defaultHTTPAddr        = "0.0.0.0:12345"
	defaultReadTimeout     = 5 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

// JudgeConfig holds judging runtime settings.
type JudgeConfig struct {
	// WorkRoot is where per-job scratch directories are created. Empty
	// means the system temp directory.
	WorkRoot string `yaml:"workRoot"`
}

// AppConfig holds the judge server configuration.
type AppConfig struct {
	Server    ServerConfig       `yaml:"server"`
	Logger    logger.Config      `yaml:"logger"`
	Judge     JudgeConfig        `yaml:"judge"`
	Languages []catalog.Language `yaml:"languages"`
	Problems  []catalog.Problem  `yaml:"problems"`
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file failed: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse config file failed: %w", err)
	}
	return nil
}

func loadAppConfig(path string) (*AppConfig, error) {
	var cfg AppConfig
	if err := loadYAML(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultHTTPAddr
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = defaultIdleTimeout
	}
	if cfg.Judge.WorkRoot == "" {
		cfg.Judge.WorkRoot = os.TempDir()
	}

	if len(cfg.Languages) == 0 {
		return nil, fmt.Errorf("at least one language is required")
	}
	for _, lang := range cfg.Languages {
		if lang.Name == "" || lang.FileName == "" || lang.Command == "" {
			return nil, fmt.Errorf("language name, file_name and command are required")
		}
	}
	for _, p := range cfg.Problems {
		if p.Type != catalog.CompareStandard && p.Type != catalog.CompareStrict {
			return nil, fmt.Errorf("problem %d has unknown type %q", p.ID, p.Type)
		}
		if len(p.Cases) == 0 {
			return nil, fmt.Errorf("problem %d has no cases", p.ID)
		}
	}

	return &cfg, nil
}
