package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/width"

	"placement/ml"
)

const invalidInputMessage = "Invalid input. Please provide numeric values."

var (
	errInvalidInput = errors.New("invalid input")
	errNoPrediction = errors.New("model returned no prediction")
)

type predictHandler struct {
	model  ml.Classifier
	logger *zap.Logger
}

func (h *predictHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	row, err := decodeFeatureRow(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: invalidInputMessage})
		return
	}

	label, err := h.predict(r.Context(), row)
	if err != nil {
		h.logger.Error("inference failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Float64("cgpa", row.CGPA),
			zap.Float64("iq", row.IQ),
			zap.Float64("profile_score", row.ProfileScore),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{Result: label.String()})
}

// predict turns a model panic into an error.
func (h *predictHandler) predict(ctx context.Context, row ml.FeatureRow) (label ml.Label, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()

	labels, err := h.model.Predict(ctx, []ml.FeatureRow{row})
	if err != nil {
		return "", err
	}
	if len(labels) == 0 {
		return "", errNoPrediction
	}
	return labels[0], nil
}

// decodeFeatureRow reads a JSON object body when the request says so and posted form fields otherwise.
func decodeFeatureRow(r *http.Request) (ml.FeatureRow, error) {
	var (
		fields map[string]interface{}
		err    error
	)
	if isJSONRequest(r) {
		fields, err = jsonFields(r)
	} else {
		fields, err = formFields(r)
	}
	if err != nil {
		return ml.FeatureRow{}, err
	}

	values := make([]float64, len(ml.FeatureNames))
	for i, name := range ml.FeatureNames {
		v, ok := coerceNumber(fields[name])
		if !ok {
			return ml.FeatureRow{}, fmt.Errorf("%w: %s", errInvalidInput, name)
		}
		values[i] = v
	}
	return ml.FeatureRow{CGPA: values[0], IQ: values[1], ProfileScore: values[2]}, nil
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func jsonFields(r *http.Request) (map[string]interface{}, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	var fields map[string]interface{}
	if err := decoder.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidInput, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: body is not a JSON object", errInvalidInput)
	}
	// The object must be the whole body.
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after JSON object", errInvalidInput)
	}
	return fields, nil
}

func formFields(r *http.Request) (map[string]interface{}, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(32 << 10)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidInput, err)
	}

	fields := make(map[string]interface{}, len(ml.FeatureNames))
	for _, name := range ml.FeatureNames {
		if vs, ok := r.PostForm[name]; ok && len(vs) > 0 {
			fields[name] = vs[0]
		}
	}
	return fields, nil
}

// coerceNumber accepts JSON numbers and numeric strings. Full-width digits are folded to ASCII.
func coerceNumber(v interface{}) (float64, bool) {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = width.Narrow.String(strings.TrimSpace(t))
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
