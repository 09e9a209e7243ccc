package ml

import (
	"context"
	"errors"
)

var (
	ErrUnsupportedModel = errors.New("unsupported model type")
	ErrSchemaMismatch   = errors.New("feature names do not match model schema")
)

// FeatureNames is the column order every model artifact is trained on.
var FeatureNames = []string{"cgpa", "iq", "profile_score"}

type FeatureRow struct {
	CGPA         float64
	IQ           float64
	ProfileScore float64
}

func (r FeatureRow) Values() []float64 {
	return []float64{r.CGPA, r.IQ, r.ProfileScore}
}

// Label is a model's prediction in transport form: a class index, a class name or a boolean,
// whatever the artifact declares.
type Label string

func (l Label) String() string {
	return string(l)
}

// Classifier is safe for concurrent use once loaded. It returns one label per row.
type Classifier interface {
	Predict(ctx context.Context, rows []FeatureRow) ([]Label, error)
}

func checkFeatureNames(names []string) error {
	if names == nil {
		return nil
	}
	if len(names) != len(FeatureNames) {
		return ErrSchemaMismatch
	}
	for i, name := range names {
		if name != FeatureNames[i] {
			return ErrSchemaMismatch
		}
	}
	return nil
}
