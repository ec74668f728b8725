// Package config holds the settings a transaction log is built from.
package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pmkol/txlog/mlog"
	"github.com/pmkol/txlog/pkg/list"
)

type Config struct {
	Log  mlog.LogConfig `yaml:"log"`
	List list.Options   `yaml:"list"`
}

func decoderOpt(cfg *mapstructure.DecoderConfig) {
	cfg.ErrorUnused = true
	cfg.TagName = "yaml"
	cfg.WeaklyTypedInput = true
}

// Load reads a config file in any format viper supports, picked by the
// file extension.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg, decoderOpt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Decode decodes a config from a generic map, e.g. a sub tree of a larger
// config document.
func Decode(in map[string]any) (*Config, error) {
	cfg := new(Config)
	dc := &mapstructure.DecoderConfig{Result: cfg}
	decoderOpt(dc)
	d, err := mapstructure.NewDecoder(dc)
	if err != nil {
		return nil, err
	}
	if err := d.Decode(in); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// NewList builds the logger described by c and an empty list using it.
func NewList(c *Config) (*list.List, error) {
	lg, err := mlog.NewLogger(&c.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	lg.Debug("new transaction log", zap.Int("capacity", c.List.Capacity), zap.Bool("slot_reuse", !c.List.DisableSlotReuse))
	return list.New(list.WithOptions(c.List), list.WithLogger(lg)), nil
}
