package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/crucial707/loanapp/internal/views"
	"github.com/go-playground/validator/v10"
)

const (
	MsgUserNotFound     = "User not found"
	MsgLogoutSuccessful = "Logout successful"
)

// MessageResponse is the JSON body of every non-HTML response.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSONMessage sends {"message": message} with status.
func JSONMessage(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(MessageResponse{Message: message})
}

// JSONServerError sends a 500 carrying the error text, as {"message": "Error: ..."}.
func JSONServerError(w http.ResponseWriter, err error) {
	JSONMessage(w, "Error: "+err.Error(), http.StatusInternalServerError)
}

// renderPage renders a page or falls back to a JSON 500 when the template fails.
func renderPage(w http.ResponseWriter, logger *slog.Logger, name string, data any) {
	if err := views.Page(w, http.StatusOK, name, data); err != nil {
		logger.Error("render page", "page", name, "error", err)
		JSONServerError(w, err)
	}
}

func renderSnippet(w http.ResponseWriter, logger *slog.Logger, name string) {
	if err := views.Snippet(w, http.StatusOK, name); err != nil {
		logger.Error("render snippet", "snippet", name, "error", err)
		JSONServerError(w, err)
	}
}

// ==========================
// Credential form
// ==========================
type credentialForm struct {
	Username string `form:"username" validate:"required,max=255"`
	Password string `form:"password" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

func parseCredentials(r *http.Request) (credentialForm, error) {
	if err := r.ParseForm(); err != nil {
		return credentialForm{}, fmt.Errorf("parse form: %w", err)
	}
	in := credentialForm{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return credentialForm{}, fmt.Errorf("%s: failed %q check", verrs[0].Field(), verrs[0].Tag())
		}
		return credentialForm{}, err
	}
	return in, nil
}
