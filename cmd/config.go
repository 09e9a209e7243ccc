package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"

	qhttp "placement/http"
	"placement/logging"
	"placement/ml"
)

const defaultConfigPath = "config.yaml"

type Config struct {
	Http qhttp.ServerConfig `yaml:"http"`
	ML   struct {
		ModelType string `yaml:"model_type"`
		ModelPath string `yaml:"model_path"`
		CacheSize int    `yaml:"cache_size"`
	} `yaml:"ml"`
	Log logging.Config `yaml:"log"`
}

func defaultConfig() *Config {
	config := &Config{
		Http: qhttp.DefaultServerConfig(),
		Log:  logging.DefaultConfig(),
	}
	config.ML.ModelType = ml.ModelTypeDecisionTree
	config.ML.ModelPath = "model.json"
	return config
}

// loadConfig overlays the YAML file and then the environment onto the defaults.
// A missing file is only an error when it was asked for explicitly.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("open config: %w", err)
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnv(config *Config) error {
	if v, ok := os.LookupEnv("PLACEMENT_HOST"); ok {
		config.Http.Host = v
	}
	if v, ok := os.LookupEnv("PLACEMENT_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PLACEMENT_PORT: %w", err)
		}
		config.Http.Port = port
	}
	if v, ok := os.LookupEnv("PLACEMENT_MODEL_TYPE"); ok {
		config.ML.ModelType = v
	}
	if v, ok := os.LookupEnv("PLACEMENT_MODEL_PATH"); ok {
		config.ML.ModelPath = v
	}
	if v, ok := os.LookupEnv("PLACEMENT_LOG_LEVEL"); ok {
		config.Log.Level = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Http.Port)
	}
	if c.ML.ModelType == "" || c.ML.ModelPath == "" {
		return errors.New("ml.model_type and ml.model_path are required")
	}
	if c.ML.CacheSize < 0 {
		return fmt.Errorf("invalid ml.cache_size %d", c.ML.CacheSize)
	}
	return nil
}
