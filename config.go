package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/MakeGal/AvatarMusicBox/audio"
	"github.com/MakeGal/AvatarMusicBox/buttons"
	"github.com/MakeGal/AvatarMusicBox/console"
	"github.com/MakeGal/AvatarMusicBox/indicator"
	"github.com/MakeGal/AvatarMusicBox/mqtt"
	"github.com/MakeGal/AvatarMusicBox/tagreader"
)

// Config is the main configuration structure for the music box.
type Config struct {
	// Tag reader configuration
	Reader tagreader.Config `yaml:"reader"`

	// Audio module configuration
	Audio audio.Config `yaml:"audio"`

	// Volume button configuration
	Buttons buttons.Config `yaml:"buttons"`

	// Playing LED configuration
	Indicator indicator.Config `yaml:"indicator"`

	// Console command input
	Console console.Config `yaml:"console"`

	// Telemetry broker settings
	MQTT mqtt.Config `yaml:"mqtt"`

	// General settings
	ClientID string `yaml:"client_id"`
}

// LoadConfig reads and decodes the yaml config file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.ClientID == "" {
		cfg.ClientID = "musicbox"
	}
	return &cfg, nil
}
