// Package config loads settings from an optional YAML file, MDEXEC_*
// environment variables and command line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ezerfernandes/mdexec/internal/lang"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "MDEXEC"

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LanguageConfig describes a binding. Inline and File are command lines
// where {} stands for the block source or file path.
type LanguageConfig struct {
	Extension string   `mapstructure:"extension"`
	Inline    string   `mapstructure:"inline"`
	File      string   `mapstructure:"file"`
	Aliases   []string `mapstructure:"aliases"`
	Builtin   bool     `mapstructure:"builtin"`
}

type Config struct {
	Strategy  string                    `mapstructure:"strategy"`
	Dir       string                    `mapstructure:"dir"`
	Timeout   time.Duration             `mapstructure:"timeout"`
	Format    string                    `mapstructure:"format"`
	Log       LogConfig                 `mapstructure:"log"`
	Languages map[string]LanguageConfig `mapstructure:"languages"`
}

// flagKeys maps configuration keys to the flags that override them.
var flagKeys = map[string]string{
	"strategy":  "strategy",
	"dir":       "dir",
	"timeout":   "timeout",
	"format":    "format",
	"log.level": "log-level",
}

func defaults(v *viper.Viper) {
	v.SetDefault("strategy", "inline")
	v.SetDefault("dir", ".mdexec")
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("format", "table")
	v.SetDefault("log.level", "warn")
}

// Load reads the configuration file at path, if any, and binds the flags in
// flags that are known configuration keys. Flags set on the command line win
// over the environment, which wins over the file.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}

			if err := v.BindPFlag(key, flag); err != nil {
				return nil, err
			}
		}
	}

	if len(path) != 0 {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &cfg, nil
}

// Registry returns the default bindings with the configured languages added
// or replaced.
func (c *Config) Registry() (*lang.Registry, error) {
	reg := lang.Defaults()

	for name, lc := range c.Languages {
		binding, err := lc.binding(name)
		if err != nil {
			return nil, err
		}

		if err := reg.Register(binding); err != nil {
			return nil, fmt.Errorf("config: language %s: %w", name, err)
		}
	}

	return reg, nil
}

func (lc LanguageConfig) binding(name string) (lang.Binding, error) {
	inline, err := lang.ParseTemplate(lc.Inline)
	if err != nil {
		return lang.Binding{}, fmt.Errorf("config: language %s: inline: %w", name, err)
	}

	file, err := lang.ParseTemplate(lc.File)
	if err != nil {
		return lang.Binding{}, fmt.Errorf("config: language %s: file: %w", name, err)
	}

	return lang.Binding{
		Name:      name,
		Aliases:   lc.Aliases,
		Extension: lc.Extension,
		Inline:    inline,
		File:      file,
		Builtin:   lc.Builtin,
	}, nil
}
