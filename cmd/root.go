package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"placement/logging"
	"placement/ml"
)

func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "placement",
		Short:         "Serve placement predictions from a pre-trained model",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default ./config.yaml if present)")

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newPredictCmd(&configPath))
	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads config, builds the logger and loads the model once.
func setup(configPath string) (*Config, *zap.Logger, ml.Classifier, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.New(config.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	model, err := ml.LoadModel(config.ML.ModelType, config.ML.ModelPath)
	if err != nil {
		logger.Error("failed to load model",
			zap.String("model_type", config.ML.ModelType),
			zap.String("model_path", config.ML.ModelPath),
			zap.Error(err),
		)
		return nil, nil, nil, fmt.Errorf("load model: %w", err)
	}
	model, err = ml.NewCachedClassifier(model, config.ML.CacheSize)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("model loaded",
		zap.String("model_type", config.ML.ModelType),
		zap.String("model_path", config.ML.ModelPath),
		zap.Int("cache_size", config.ML.CacheSize),
	)
	return config, logger, model, nil
}
