package ml

import (
	"fmt"
	"os"
)

const (
	ModelTypeDecisionTree       = "decision_tree"
	ModelTypeLogisticRegression = "logistic_regression"
)

// LoadModel reads the artifact at path once. The returned model is never mutated afterwards.
func LoadModel(modelType, path string) (Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	switch modelType {
	case ModelTypeDecisionTree:
		model := &DecisionTree{}
		if err := model.Unmarshal(payload); err != nil {
			return nil, fmt.Errorf("load decision tree %s: %w", path, err)
		}
		return model, nil
	case ModelTypeLogisticRegression:
		model := &LogisticRegression{}
		if err := model.Unmarshal(payload); err != nil {
			return nil, fmt.Errorf("load logistic regression %s: %w", path, err)
		}
		return model, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, modelType)
	}
}
