package handlers

import (
	"log/slog"
	"net/http"

	"github.com/crucial707/loanapp/internal/views"
)

// Home renders the landing page.
func Home(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, logger, views.Home, nil)
	}
}
