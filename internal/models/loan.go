package models

// LoanApplication is the feature vector submitted on the prediction form.
// Field order matches the order the model was trained on.
type LoanApplication struct {
	Gender            string  `json:"gender"`
	Married           string  `json:"married"`
	Dependents        string  `json:"dependents"`
	Education         string  `json:"education"`
	SelfEmployed      string  `json:"self_employed"`
	ApplicantIncome   float64 `json:"applicant_income"`
	CoapplicantIncome float64 `json:"coapplicant_income"`
	LoanAmount        float64 `json:"loan_amount"`
	LoanAmountTerm    float64 `json:"loan_amount_term"`
	CreditHistory     float64 `json:"credit_history"`
	PropertyArea      string  `json:"property_area"`
}

// Categorical returns the string-valued features keyed by form name.
func (a LoanApplication) Categorical() map[string]string {
	return map[string]string{
		"gender":        a.Gender,
		"married":       a.Married,
		"dependents":    a.Dependents,
		"education":     a.Education,
		"self_employed": a.SelfEmployed,
		"property_area": a.PropertyArea,
	}
}

// Numeric returns the float-valued features keyed by form name.
func (a LoanApplication) Numeric() map[string]float64 {
	return map[string]float64{
		"applicant_income":   a.ApplicantIncome,
		"coapplicant_income": a.CoapplicantIncome,
		"loan_amount":        a.LoanAmount,
		"loan_amount_term":   a.LoanAmountTerm,
		"credit_history":     a.CreditHistory,
	}
}
