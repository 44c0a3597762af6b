package handler

import (
	"errors"
	"net/http"

	userdomain "budget-app-go/internal/domain/user"
	"budget-app-go/internal/transport/httpserver/middleware"
)

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); ok {
		redirect(w, r, "/")
		return
	}
	h.render(w, http.StatusOK, "login.html", h.loginPage(""))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := formValue(r.PostForm, "username")
	password := r.PostForm.Get("password")

	user, err := h.Users.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			h.log.BusinessError("auth.login: invalid credentials", err, "username", username)
			data := h.loginPage(username)
			data.Message = "Invalid username and/or password."
			h.render(w, http.StatusUnauthorized, "login.html", data)
			return
		}
		h.internalError(w, "auth.login: authenticate failed", err, "username", username)
		return
	}

	if h.demo.Enabled && user.Username == h.demo.Username {
		report, err := h.Demo.Reset(r.Context(), user.ID)
		if err != nil {
			h.internalError(w, "auth.login: reset demo data failed", err, "user_id", user.ID)
			return
		}
		h.log.Info("auth.login: demo data reset", "user_id", user.ID, "transactions", report.Transactions, "skipped", len(report.Skipped))
	}

	if err := h.Sessions.Issue(w, sessionUser(user)); err != nil {
		h.internalError(w, "auth.login: issue session failed", err, "user_id", user.ID)
		return
	}
	redirect(w, r, "/")
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	redirect(w, r, "/login")
}

func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); ok {
		redirect(w, r, "/")
		return
	}
	h.render(w, http.StatusOK, "register.html", authPage{page: newPage("Register", nil)})
}

// Register creates the account, then its Personal circle, then signs the
// user in.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	input := userdomain.RegisterInput{
		Username:     formValue(r.PostForm, "username"),
		Email:        formValue(r.PostForm, "email"),
		Password:     r.PostForm.Get("password"),
		Confirmation: r.PostForm.Get("confirmation"),
	}

	user, err := h.Users.Register(r.Context(), input)
	if err != nil {
		ferr, ok := classify(err)
		if !ok {
			h.internalError(w, "auth.register: create user failed", err, "username", input.Username)
			return
		}
		h.log.BusinessError("auth.register: rejected", err, "username", input.Username)
		data := authPage{page: newPage("Register", nil), Username: input.Username, Email: input.Email}
		// Register shows a single message above the form.
		data.Message = ferr.message
		h.render(w, ferr.status, "register.html", data)
		return
	}

	if _, err := h.Circles.SetupPersonalSpace(r.Context(), user.ID); err != nil {
		h.internalError(w, "auth.register: setup personal space failed", err, "user_id", user.ID)
		return
	}

	if err := h.Sessions.Issue(w, sessionUser(user)); err != nil {
		h.internalError(w, "auth.register: issue session failed", err, "user_id", user.ID)
		return
	}
	redirect(w, r, "/")
}

func (h *Handlers) loginPage(username string) authPage {
	data := authPage{page: newPage("Log in", nil), Username: username}
	if h.demo.Enabled {
		data.DemoUsername = h.demo.Username
	}
	return data
}

func sessionUser(user *userdomain.User) middleware.User {
	return middleware.User{ID: user.ID, Username: user.Username, Email: user.Email}
}
