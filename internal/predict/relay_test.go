package predict

import (
	"context"
	"errors"
	"testing"

	"github.com/crucial707/loanapp/internal/models"
)

func fixedScore(score float64) Model {
	return ModelFunc(func(ctx context.Context, app models.LoanApplication) (float64, error) {
		return score, nil
	})
}

func TestRelay_Predict_Threshold(t *testing.T) {
	cases := []struct {
		score    float64
		eligible bool
		message  string
	}{
		{0.9, true, EligibleMessage},
		{0.1, false, IneligibleMessage},
		{0.5, false, IneligibleMessage},
		{0.5000001, true, EligibleMessage},
	}
	for _, tc := range cases {
		r := NewRelay(fixedScore(tc.score))
		got, err := r.Predict(context.Background(), models.LoanApplication{})
		if err != nil {
			t.Fatalf("Predict(%v): %v", tc.score, err)
		}
		if got.Eligible != tc.eligible || got.Message != tc.message {
			t.Errorf("score %v: got %+v, want eligible=%v message=%q", tc.score, got, tc.eligible, tc.message)
		}
	}
}

func TestRelay_Predict_ModelError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRelay(ModelFunc(func(ctx context.Context, app models.LoanApplication) (float64, error) {
		return 0, boom
	}))
	if _, err := r.Predict(context.Background(), models.LoanApplication{}); !errors.Is(err, boom) {
		t.Errorf("expected wrapped model error, got %v", err)
	}
}

func TestRelay_Predict_NoModel(t *testing.T) {
	r := NewRelay(nil)
	if _, err := r.Predict(context.Background(), models.LoanApplication{}); !errors.Is(err, ErrNoModel) {
		t.Errorf("expected ErrNoModel, got %v", err)
	}
}

func TestRelay_Swap(t *testing.T) {
	r := NewRelay(fixedScore(0.1))
	r.Swap(fixedScore(0.9))

	got, err := r.Predict(context.Background(), models.LoanApplication{})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if !got.Eligible {
		t.Errorf("expected swapped model to be used, got %+v", got)
	}
}

func TestRelay_PassesFeatureVector(t *testing.T) {
	var seen models.LoanApplication
	r := NewRelay(ModelFunc(func(ctx context.Context, app models.LoanApplication) (float64, error) {
		seen = app
		return 0.7, nil
	}))
	want := models.LoanApplication{Gender: "Female", ApplicantIncome: 4000, PropertyArea: "Rural"}
	if _, err := r.Predict(context.Background(), want); err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if seen != want {
		t.Errorf("model received %+v, want %+v", seen, want)
	}
}
