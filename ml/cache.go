package ml

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedClassifier memoises single-row predictions. Errors are never cached.
type CachedClassifier struct {
	inner Classifier
	cache *lru.Cache[FeatureRow, Label]
}

// NewCachedClassifier returns inner unchanged when size is not positive.
func NewCachedClassifier(inner Classifier, size int) (Classifier, error) {
	if size <= 0 {
		return inner, nil
	}
	cache, err := lru.New[FeatureRow, Label](size)
	if err != nil {
		return nil, err
	}
	return &CachedClassifier{inner: inner, cache: cache}, nil
}

func (c *CachedClassifier) Predict(ctx context.Context, rows []FeatureRow) ([]Label, error) {
	if len(rows) != 1 {
		return c.inner.Predict(ctx, rows)
	}
	if label, ok := c.cache.Get(rows[0]); ok {
		return []Label{label}, nil
	}
	labels, err := c.inner.Predict(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(labels) == 1 {
		c.cache.Add(rows[0], labels[0])
	}
	return labels, nil
}

func (c *CachedClassifier) Len() int {
	return c.cache.Len()
}
