package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/crucial707/loanapp/internal/models"
)

// NumericFeature standardizes a numeric input before weighting it.
type NumericFeature struct {
	Weight float64 `json:"weight"`
	Mean   float64 `json:"mean"`
	Scale  float64 `json:"scale"`
}

// LogisticModel is a logistic regression exported as JSON. Categorical
// encoding is part of the artifact: each level carries its own weight.
type LogisticModel struct {
	Version     string                        `json:"version"`
	Intercept   float64                       `json:"intercept"`
	Numeric     map[string]NumericFeature     `json:"numeric"`
	Categorical map[string]map[string]float64 `json:"categorical"`
}

// LoadModel reads and checks a model artifact.
func LoadModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	return ParseModel(data)
}

// ParseModel decodes an artifact and rejects features the form does not supply.
func ParseModel(data []byte) (*LogisticModel, error) {
	var m LogisticModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	for name := range m.Numeric {
		if _, ok := (models.LoanApplication{}).Numeric()[name]; !ok {
			return nil, fmt.Errorf("model: unknown numeric feature %q", name)
		}
	}
	for name := range m.Categorical {
		if _, ok := (models.LoanApplication{}).Categorical()[name]; !ok {
			return nil, fmt.Errorf("model: unknown categorical feature %q", name)
		}
	}
	return &m, nil
}

// Score returns the predicted probability of eligibility.
func (m *LogisticModel) Score(ctx context.Context, app models.LoanApplication) (float64, error) {
	z := m.Intercept

	values := app.Numeric()
	for name, f := range m.Numeric {
		scale := f.Scale
		if scale == 0 {
			scale = 1
		}
		z += f.Weight * (values[name] - f.Mean) / scale
	}

	levels := app.Categorical()
	for name, weights := range m.Categorical {
		w, ok := weights[levels[name]]
		if !ok {
			return 0, fmt.Errorf("unknown category %q for %s (expected one of %v)", levels[name], name, levelNames(weights))
		}
		z += w
	}

	if math.IsNaN(z) {
		return 0, fmt.Errorf("score is not a number")
	}
	return 1 / (1 + math.Exp(-z)), nil
}

func levelNames(weights map[string]float64) []string {
	names := make([]string, 0, len(weights))
	for k := range weights {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
