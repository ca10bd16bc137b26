package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/uvalib/virgo4-finna-ws/internal/finna"
)

// FinnaConfig wraps up the config for Finna API access
type FinnaConfig struct {
	API       string  `yaml:"api"`
	Timeout   int     `yaml:"timeout"`
	RateLimit float64 `yaml:"rate_limit"`
}

// ServiceConfig defines all of the finna service configuration parameters
type ServiceConfig struct {
	Port        int         `yaml:"port"`
	ImageOrigin string      `yaml:"image_origin"`
	Debug       bool        `yaml:"debug"`
	Finna       FinnaConfig `yaml:"finna"`
}

// loadConfiguration will load the service configuration from the command line.
// Values from an optional YAML file are used unless the same setting was given
// as a flag.
func loadConfiguration(args []string) (*ServiceConfig, error) {
	var cfg ServiceConfig
	var cfgFile string
	fs := flag.NewFlagSet("finna-ws", flag.ContinueOnError)
	fs.StringVar(&cfgFile, "config", "", "YAML configuration file")
	fs.IntVar(&cfg.Port, "port", 8080, "Service port (default 8080)")
	fs.StringVar(&cfg.ImageOrigin, "images", "", "Origin for relative cover image paths (default: Finna API URL)")
	fs.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")

	// Finna API
	fs.StringVar(&cfg.Finna.API, "finna", finna.DefaultBaseURL, "Finna API URL")
	fs.IntVar(&cfg.Finna.Timeout, "timeout", 10, "Finna request timeout in seconds")
	fs.Float64Var(&cfg.Finna.RateLimit, "rps", 5, "Max Finna requests per second, 0 for unlimited")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		log.Printf("Load configuration from %s", cfgFile)
		data, err := os.ReadFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgFile, err)
		}
		// flags given on the command line win over the file
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}

	if cfg.Finna.API == "" {
		return nil, errors.New("finna param is required")
	}
	log.Printf("Finna API endpoint: %s", cfg.Finna.API)
	if cfg.ImageOrigin == "" {
		cfg.ImageOrigin = cfg.Finna.API
	}
	if cfg.Finna.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %d", cfg.Finna.Timeout)
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}

	return &cfg, nil
}
