package ml

import (
	"errors"
	"io/fs"
	"testing"
)

func TestLoadModelUnsupportedType(t *testing.T) {
	_, err := LoadModel("random_forest", "testdata/decision_tree.json")
	if !errors.Is(err, ErrUnsupportedModel) {
		t.Fatalf("expected unsupported model error, got %v", err)
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(ModelTypeDecisionTree, "testdata/missing.json")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadModelWrongFormat(t *testing.T) {
	if _, err := LoadModel(ModelTypeDecisionTree, "testdata/logistic_regression.json"); err == nil {
		t.Fatalf("expected error loading logistic artifact as a tree")
	}
}

func TestFeatureRowValuesOrder(t *testing.T) {
	values := FeatureRow{CGPA: 1, IQ: 2, ProfileScore: 3}.Values()
	if len(values) != len(FeatureNames) || values[0] != 1 || values[1] != 2 || values[2] != 3 {
		t.Fatalf("unexpected values: %v", values)
	}
}
