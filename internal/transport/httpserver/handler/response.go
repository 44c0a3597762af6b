package handler

import (
	"encoding/json"
	"net/http"

	"budget-app-go/internal/transport/httpserver/middleware"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handlers) internalError(w http.ResponseWriter, message string, err error, args ...any) {
	h.log.InternalError(message, err, args...)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handlers) notFound(w http.ResponseWriter, message string, err error, args ...any) {
	h.log.BusinessError(message, err, args...)
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

// currentUser is only called behind RequireUser.
func currentUser(r *http.Request) middleware.User {
	user, _ := middleware.UserFromContext(r.Context())
	return user
}
