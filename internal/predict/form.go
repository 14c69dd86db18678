package predict

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/crucial707/loanapp/internal/models"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput wraps every form parsing failure.
var ErrInvalidInput = errors.New("invalid input")

// FieldNames lists the prediction form fields in feature order.
var FieldNames = []string{
	"gender", "married", "dependents", "education", "self_employed",
	"applicant_income", "coapplicant_income", "loan_amount", "loan_amount_term",
	"credit_history", "property_area",
}

type loanForm struct {
	Gender            string `form:"gender" validate:"required"`
	Married           string `form:"married" validate:"required"`
	Dependents        string `form:"dependents" validate:"required"`
	Education         string `form:"education" validate:"required"`
	SelfEmployed      string `form:"self_employed" validate:"required"`
	ApplicantIncome   string `form:"applicant_income" validate:"required"`
	CoapplicantIncome string `form:"coapplicant_income" validate:"required"`
	LoanAmount        string `form:"loan_amount" validate:"required"`
	LoanAmountTerm    string `form:"loan_amount_term" validate:"required"`
	CreditHistory     string `form:"credit_history" validate:"required"`
	PropertyArea      string `form:"property_area" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// ParseForm builds a LoanApplication from posted form values. Categorical
// fields must be present; numeric fields must parse as float64.
func ParseForm(values url.Values) (models.LoanApplication, error) {
	get := func(k string) string { return strings.TrimSpace(values.Get(k)) }

	in := loanForm{
		Gender:            get("gender"),
		Married:           get("married"),
		Dependents:        get("dependents"),
		Education:         get("education"),
		SelfEmployed:      get("self_employed"),
		ApplicantIncome:   get("applicant_income"),
		CoapplicantIncome: get("coapplicant_income"),
		LoanAmount:        get("loan_amount"),
		LoanAmountTerm:    get("loan_amount_term"),
		CreditHistory:     get("credit_history"),
		PropertyArea:      get("property_area"),
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, fe.Field())
			}
			return models.LoanApplication{}, fmt.Errorf("%w: missing field(s) %s", ErrInvalidInput, strings.Join(missing, ", "))
		}
		return models.LoanApplication{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	app := models.LoanApplication{
		Gender:       in.Gender,
		Married:      in.Married,
		Dependents:   in.Dependents,
		Education:    in.Education,
		SelfEmployed: in.SelfEmployed,
		PropertyArea: in.PropertyArea,
	}

	numeric := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"applicant_income", in.ApplicantIncome, &app.ApplicantIncome},
		{"coapplicant_income", in.CoapplicantIncome, &app.CoapplicantIncome},
		{"loan_amount", in.LoanAmount, &app.LoanAmount},
		{"loan_amount_term", in.LoanAmountTerm, &app.LoanAmountTerm},
		{"credit_history", in.CreditHistory, &app.CreditHistory},
	}
	for _, n := range numeric {
		v, err := strconv.ParseFloat(n.raw, 64)
		if err != nil {
			return models.LoanApplication{}, fmt.Errorf("%w: could not convert %s to float: %q", ErrInvalidInput, n.name, n.raw)
		}
		*n.dst = v
	}

	return app, nil
}
