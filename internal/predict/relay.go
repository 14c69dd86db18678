// Package predict relays loan applications to a pre-trained model and maps
// its score to one of two fixed messages.
package predict

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/crucial707/loanapp/internal/models"
)

// Threshold is the exclusive lower bound a score must exceed to be eligible.
const Threshold = 0.5

const (
	EligibleMessage   = "Congrats!! You are eligible for the loan"
	IneligibleMessage = "Sorry, you are not eligible for the loan"
)

// ErrNoModel is returned when the relay has no model loaded.
var ErrNoModel = errors.New("no model loaded")

// Model scores a feature vector. Higher means more likely eligible.
type Model interface {
	Score(ctx context.Context, app models.LoanApplication) (float64, error)
}

// ModelFunc adapts a function to Model.
type ModelFunc func(ctx context.Context, app models.LoanApplication) (float64, error)

func (f ModelFunc) Score(ctx context.Context, app models.LoanApplication) (float64, error) {
	return f(ctx, app)
}

// Result is the decision shown to the applicant.
type Result struct {
	Eligible bool   `json:"eligible"`
	Message  string `json:"message"`
}

// Relay holds the current model. The model can be swapped while requests are served.
type Relay struct {
	mu    sync.RWMutex
	model Model
}

func NewRelay(m Model) *Relay {
	return &Relay{model: m}
}

// Swap replaces the model used by subsequent predictions.
func (r *Relay) Swap(m Model) {
	r.mu.Lock()
	r.model = m
	r.mu.Unlock()
}

// Model returns the model currently in use.
func (r *Relay) Model() Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.model
}

// Predict scores app and selects the message.
func (r *Relay) Predict(ctx context.Context, app models.LoanApplication) (Result, error) {
	m := r.Model()
	if m == nil {
		return Result{}, ErrNoModel
	}

	score, err := m.Score(ctx, app)
	if err != nil {
		return Result{}, fmt.Errorf("model: %w", err)
	}

	return Decide(score), nil
}

// Decide maps a raw score to a Result.
func Decide(score float64) Result {
	if score > Threshold {
		return Result{Eligible: true, Message: EligibleMessage}
	}
	return Result{Eligible: false, Message: IneligibleMessage}
}
