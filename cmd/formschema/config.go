package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds CLI settings. Environment overrides use the FORMSCHEMA_
// prefix (FORMSCHEMA_RENDERER, FORMSCHEMA_FORMS_DIR, ...).
type Config struct {
	FormsDir string `mapstructure:"forms_dir"`
	Renderer string `mapstructure:"renderer"`
	IDPrefix string `mapstructure:"id_prefix"`
}

// loadConfig reads path (or FORMSCHEMA_CONFIG, or
// ~/.config/formschema/config.yaml) when present, then env, then bound flags.
func loadConfig(path string, bind func(*viper.Viper) error) (Config, error) {
	v := viper.New()

	v.SetDefault("forms_dir", "")
	v.SetDefault("renderer", "vanilla")
	v.SetDefault("id_prefix", "")

	v.SetConfigType("yaml")
	if path == "" {
		path = os.Getenv("FORMSCHEMA_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "formschema"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FORMSCHEMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if bind != nil {
		if err := bind(v); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
