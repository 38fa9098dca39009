package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
)

type accountsHandler struct {
	accounts Accounts
	tokens   *TokenIssuer
	limiter  *IPRateLimiter
	logger   *log.Logger
}

func (h *accountsHandler) Mount(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/check-username", h.checkUsername)
		r.With(h.limiter.Middleware).Post("/login", h.login)
	})
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type usernameRequest struct {
	Username string `json:"username"`
}

type usernameResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

// register handles POST /v1/auth/register
func (h *accountsHandler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusCreated, registerResponse{
		Message: fmt.Sprintf("Account %q created, you can now log in", user.Username()),
		User:    userResponse{ID: user.ID(), Username: user.Username()},
	})
}

// checkUsername handles POST /v1/auth/check-username
func (h *accountsHandler) checkUsername(w http.ResponseWriter, r *http.Request) {
	var req usernameRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	available, err := h.accounts.Available(r.Context(), req.Username)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	msg := "This username is available."
	if !available {
		msg = "This username already exists."
	}
	WriteJSON(w, http.StatusOK, usernameResponse{Available: available, Message: msg})
}

// login handles POST /v1/auth/login
func (h *accountsHandler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	token, expires, err := h.tokens.Issue(user)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expires.UTC(),
		User:      userResponse{ID: user.ID(), Username: user.Username()},
	})
}
