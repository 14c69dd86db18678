package handlers

import (
	"log/slog"
	"net/http"

	"github.com/crucial707/loanapp/internal/metrics"
	"github.com/crucial707/loanapp/internal/predict"
	"github.com/crucial707/loanapp/internal/views"
)

// PredictHandler serves the prediction form. It does not check the token.
type PredictHandler struct {
	Relay  *predict.Relay
	Logger *slog.Logger
}

func (h *PredictHandler) PredictForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.Logger, views.Predict, nil)
}

func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		metrics.IncPrediction("error")
		JSONServerError(w, err)
		return
	}

	app, err := predict.ParseForm(r.PostForm)
	if err != nil {
		metrics.IncPrediction("error")
		JSONServerError(w, err)
		return
	}

	result, err := h.Relay.Predict(r.Context(), app)
	if err != nil {
		h.Logger.Error("prediction failed", "error", err)
		metrics.IncPrediction("error")
		JSONServerError(w, err)
		return
	}

	if result.Eligible {
		metrics.IncPrediction("eligible")
	} else {
		metrics.IncPrediction("ineligible")
	}
	renderPage(w, h.Logger, views.Predict, map[string]any{
		"Prediction": result.Message,
	})
}
