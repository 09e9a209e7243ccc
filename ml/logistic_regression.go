package ml

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

type LogisticRegression struct {
	coefficients []float64
	intercept    float64
	threshold    float64
	classes      [2]Label
}

type logisticArtifact struct {
	FeatureNames []string      `json:"feature_names"`
	Coefficients []float64     `json:"coefficients"`
	Intercept    float64       `json:"intercept"`
	Threshold    *float64      `json:"threshold"`
	Classes      []interface{} `json:"classes"`
}

func (lr *LogisticRegression) Predict(ctx context.Context, rows []FeatureRow) ([]Label, error) {
	if len(lr.coefficients) == 0 {
		return nil, fmt.Errorf("model not loaded")
	}
	labels := make([]Label, 0, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if lr.Probability(row) >= lr.threshold {
			labels = append(labels, lr.classes[1])
		} else {
			labels = append(labels, lr.classes[0])
		}
	}
	return labels, nil
}

// Probability is the positive-class probability for row.
func (lr *LogisticRegression) Probability(row FeatureRow) float64 {
	z := lr.intercept
	for i, v := range row.Values() {
		z += lr.coefficients[i] * v
	}
	return 1 / (1 + math.Exp(-z))
}

func (lr *LogisticRegression) Unmarshal(payload []byte) error {
	var artifact logisticArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return err
	}
	if err := checkFeatureNames(artifact.FeatureNames); err != nil {
		return err
	}
	if len(artifact.Coefficients) != len(FeatureNames) {
		return fmt.Errorf("expected %d coefficients, got %d", len(FeatureNames), len(artifact.Coefficients))
	}

	threshold := 0.5
	if artifact.Threshold != nil {
		threshold = *artifact.Threshold
	}
	if threshold <= 0 || threshold >= 1 {
		return fmt.Errorf("threshold %v outside (0,1)", threshold)
	}

	classes := [2]Label{"0", "1"}
	switch len(artifact.Classes) {
	case 0:
	case 2:
		for i, v := range artifact.Classes {
			label, err := classLabel(v)
			if err != nil {
				return err
			}
			classes[i] = label
		}
	default:
		return fmt.Errorf("expected 2 classes, got %d", len(artifact.Classes))
	}

	lr.coefficients = artifact.Coefficients
	lr.intercept = artifact.Intercept
	lr.threshold = threshold
	lr.classes = classes
	return nil
}

func classLabel(v interface{}) (Label, error) {
	switch t := v.(type) {
	case string:
		return Label(t), nil
	case float64:
		return Label(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case bool:
		return Label(strconv.FormatBool(t)), nil
	default:
		return "", fmt.Errorf("unsupported class value %v", v)
	}
}
