// Package config loads collection settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/provide-io/moodnft/pkg/nft"
	nfterrors "github.com/provide-io/moodnft/pkg/nft/errors"
)

// Config describes one collection. Environment variables override values
// from the file.
type Config struct {
	Name       string `toml:"name"        env:"MOODNFT_NAME"`
	Symbol     string `toml:"symbol"      env:"MOODNFT_SYMBOL"`
	HappyImage string `toml:"happy_image" env:"MOODNFT_HAPPY_IMAGE"`
	SadImage   string `toml:"sad_image"   env:"MOODNFT_SAD_IMAGE"`
	Compat     Compat `toml:"compat"`
}

// Compat switches reproduce quirks of the reference renderer.
type Compat struct {
	LegacyMoodIndex bool `toml:"legacy_mood_index" env:"MOODNFT_LEGACY_MOOD_INDEX"`
	TrailingBrace   bool `toml:"trailing_brace"    env:"MOODNFT_TRAILING_BRACE"`
	UnguardedFields bool `toml:"unguarded_fields"  env:"MOODNFT_UNGUARDED_FIELDS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Name:       "MoodNft",
		Symbol:     "MN",
		HappyImage: "ipfs://happy",
		SadImage:   "ipfs://sad",
	}
}

// Load reads path, or the platform default file when path is empty, then
// applies environment overrides. A missing default file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if err := decodeFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.Symbol = strings.TrimSpace(cfg.Symbol)
	cfg.HappyImage = strings.TrimSpace(cfg.HappyImage)
	cfg.SadImage = strings.TrimSpace(cfg.SadImage)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("%w: unknown keys in %s: %s", nfterrors.ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks the fields a collection cannot run without.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("%w: name is required", nfterrors.ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.HappyImage) == "" {
		return fmt.Errorf("%w: happy_image is required", nfterrors.ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.SadImage) == "" {
		return fmt.Errorf("%w: sad_image is required", nfterrors.ErrInvalidConfig)
	}
	return nil
}

// Options converts the configuration into collection options.
func (c Config) Options() nft.Options {
	return nft.Options{
		Name:            c.Name,
		Symbol:          c.Symbol,
		HappyImage:      c.HappyImage,
		SadImage:        c.SadImage,
		LegacyMoodIndex: c.Compat.LegacyMoodIndex,
		TrailingBrace:   c.Compat.TrailingBrace,
		UnguardedFields: c.Compat.UnguardedFields,
	}
}
