package predict

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/loanapp/internal/models"
)

const testArtifact = `{
  "intercept": 0,
  "numeric": {"credit_history": {"weight": 2, "mean": 0.5, "scale": 0.5}},
  "categorical": {"married": {"Yes": 1, "No": -1}}
}`

func TestLogisticModel_Score(t *testing.T) {
	m, err := ParseModel([]byte(testArtifact))
	if err != nil {
		t.Fatalf("ParseModel: %v", err)
	}

	// z = 2*(1-0.5)/0.5 + 1 = 3
	got, err := m.Score(context.Background(), models.LoanApplication{CreditHistory: 1, Married: "Yes"})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	want := 1 / (1 + math.Exp(-3))
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Score: got %v, want %v", got, want)
	}

	// z = 2*(0-0.5)/0.5 - 1 = -3
	got, err = m.Score(context.Background(), models.LoanApplication{CreditHistory: 0, Married: "No"})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got >= Threshold {
		t.Errorf("expected ineligible score, got %v", got)
	}
}

func TestLogisticModel_UnknownLevel(t *testing.T) {
	m, err := ParseModel([]byte(testArtifact))
	if err != nil {
		t.Fatalf("ParseModel: %v", err)
	}
	_, err = m.Score(context.Background(), models.LoanApplication{Married: "Maybe"})
	if err == nil || !strings.Contains(err.Error(), "Maybe") {
		t.Errorf("expected unknown category error, got %v", err)
	}
}

func TestParseModel_UnknownFeature(t *testing.T) {
	_, err := ParseModel([]byte(`{"numeric": {"shoe_size": {"weight": 1}}}`))
	if err == nil {
		t.Error("expected error for unknown numeric feature")
	}
	_, err = ParseModel([]byte(`{"categorical": {"colour": {"red": 1}}}`))
	if err == nil {
		t.Error("expected error for unknown categorical feature")
	}
}

func TestLoadModel_BundledArtifact(t *testing.T) {
	m, err := LoadModel(filepath.Join("..", "..", "model", "loan_model.json"))
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}

	strong := models.LoanApplication{
		Gender: "Male", Married: "Yes", Dependents: "0", Education: "Graduate", SelfEmployed: "No",
		ApplicantIncome: 9000, CoapplicantIncome: 2000, LoanAmount: 120, LoanAmountTerm: 360,
		CreditHistory: 1, PropertyArea: "Semiurban",
	}
	res, err := NewRelay(m).Predict(context.Background(), strong)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if !res.Eligible {
		t.Errorf("expected strong applicant to be eligible, got %+v", res)
	}

	weak := strong
	weak.CreditHistory = 0
	weak.Married = "No"
	weak.PropertyArea = "Rural"
	res, err = NewRelay(m).Predict(context.Background(), weak)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if res.Eligible {
		t.Errorf("expected weak applicant to be ineligible, got %+v", res)
	}
}

func TestLoadModel_MissingFile(t *testing.T) {
	if _, err := LoadModel(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadModel_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadModel(path); err == nil {
		t.Error("expected decode error")
	}
}
