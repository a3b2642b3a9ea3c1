package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	TELEGRAM_TOKEN   string `yaml:"TELEGRAM_TOKEN"`
	TELEGRAM_CHAT_ID int64  `yaml:"TELEGRAM_CHAT_ID"`

	// Collaborator endpoints
	RPC_URL              string `yaml:"RPC_URL"`
	JUPITER_BASE_URL     string `yaml:"JUPITER_BASE_URL"`
	JUPITER_API_KEY      string `yaml:"JUPITER_API_KEY"`
	DEXSCREENER_BASE_URL string `yaml:"DEXSCREENER_BASE_URL"`

	// Trading policy
	SLIPPAGE_BPS int `yaml:"SLIPPAGE_BPS"` // slippage tolerance in basis points (100 = 1%)

	DEBUG bool `yaml:"DEBUG"`
}

const DefaultPath = "config.yml"

func Default() *Config {
	return &Config{
		TELEGRAM_TOKEN:   "",
		TELEGRAM_CHAT_ID: 0,

		RPC_URL:              "https://api.mainnet-beta.solana.com",
		JUPITER_BASE_URL:     "https://api.jup.ag",
		JUPITER_API_KEY:      "",
		DEXSCREENER_BASE_URL: "https://api.dexscreener.com",

		SLIPPAGE_BPS: 100, // 1% default

		DEBUG: false,
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		c.TELEGRAM_TOKEN = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.TELEGRAM_CHAT_ID = id
		}
	}
	if v := os.Getenv("RPC_URL"); v != "" {
		c.RPC_URL = v
	}
	if v := os.Getenv("JUPITER_BASE_URL"); v != "" {
		c.JUPITER_BASE_URL = v
	}
	if v := os.Getenv("JUPITER_API_KEY"); v != "" {
		c.JUPITER_API_KEY = v
	}
	if v := os.Getenv("DEXSCREENER_BASE_URL"); v != "" {
		c.DEXSCREENER_BASE_URL = v
	}
	if v := os.Getenv("SLIPPAGE_BPS"); v != "" {
		if bps, err := strconv.Atoi(v); err == nil {
			c.SLIPPAGE_BPS = bps
		}
	}
	if v := os.Getenv("DEBUG"); v != "" {
		c.DEBUG = v == "true" || v == "1"
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	// create if missing
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		cfg.applyEnvOverrides()
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TELEGRAM_TOKEN == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required (set in config.yml or TELEGRAM_TOKEN env)")
	}
	if c.RPC_URL == "" {
		return fmt.Errorf("RPC_URL is required")
	}
	if c.SLIPPAGE_BPS <= 0 || c.SLIPPAGE_BPS > 5000 {
		return fmt.Errorf("SLIPPAGE_BPS must be between 1 and 5000")
	}
	return nil
}

func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultPath
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}
