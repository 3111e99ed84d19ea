package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/todos/pkg/auth"
	"github.com/platinummonkey/todos/pkg/httputil"
	"github.com/platinummonkey/todos/pkg/observability"
)

// Handlers provides HTTP handlers for the account API
type Handlers struct {
	service *Service
	metrics *observability.Metrics
}

// NewHandlers creates new account handlers
func NewHandlers(service *Service, metrics *observability.Metrics) *Handlers {
	return &Handlers{
		service: service,
		metrics: metrics,
	}
}

// RegisterRoutes registers account routes. The guard middleware protects
// everything except signup and login.
func (h *Handlers) RegisterRoutes(r *mux.Router, guard func(http.Handler) http.Handler) {
	r.HandleFunc("/users", h.Signup).Methods("POST")
	r.HandleFunc("/users/login", h.Login).Methods("POST")
	r.Handle("/users/me", guard(http.HandlerFunc(h.Me))).Methods("GET")
	r.Handle("/users/me/token", guard(http.HandlerFunc(h.Logout))).Methods("DELETE")
}

// userResponse wraps a user document the way every account endpoint does
type userResponse struct {
	User *User `json:"user"`
}

// Signup handles POST /users
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	email, password, err := parseCredentials(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	user, token, err := h.service.Signup(r.Context(), email, password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.UsersCreatedTotal.Inc()
	}
	w.Header().Set(auth.TokenHeader, token)
	httputil.WriteSuccess(w, userResponse{User: user})
}

// Login handles POST /users/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httputil.ParseJSON(r, &req); err != nil {
		httputil.WriteErrors(w, http.StatusBadRequest, "INVALID_PROPERTIES")
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if h.metrics != nil {
			h.metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		h.writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues("success").Inc()
	}
	w.Header().Set(auth.TokenHeader, token)
	httputil.WriteSuccess(w, userResponse{User: user})
}

// Me handles GET /users/me
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		httputil.WriteUnauthorized(w)
		return
	}
	httputil.WriteSuccess(w, userResponse{User: session.User})
}

// Logout handles DELETE /users/me/token. It removes exactly the token
// presented on this request; other sessions stay valid.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		httputil.WriteUnauthorized(w)
		return
	}

	if err := h.service.Logout(r.Context(), session.User.ID, session.Token); err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteEmpty(w, http.StatusOK)
}

// parseCredentials decodes a signup body, enforcing the {email, password}
// whitelist: any other field rejects the payload.
func parseCredentials(r *http.Request) (string, string, error) {
	body, err := httputil.ReadBody(r)
	if err != nil {
		return "", "", ErrInvalidProperties
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", "", ErrInvalidProperties
	}
	for key := range fields {
		if key != "email" && key != "password" {
			return "", "", ErrInvalidProperties
		}
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return "", "", ErrInvalidProperties
	}
	return req.Email, req.Password, nil
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidProperties), errors.Is(err, ErrInvalidEmail):
		httputil.WriteErrors(w, http.StatusBadRequest, "INVALID_PROPERTIES")
	case errors.Is(err, ErrWeakPassword):
		httputil.WriteErrors(w, http.StatusUnprocessableEntity, "PASSWORD_TOO_SHORT")
	case errors.Is(err, ErrDuplicateEmail):
		httputil.WriteErrors(w, http.StatusConflict, "DUPLICATE_RECORD")
	case errors.Is(err, ErrInvalidCredentials):
		httputil.WriteUnauthorized(w)
	default:
		// Unknown storage failures surface as a terminal 400 with the raw
		// error serialized.
		httputil.WriteErrors(w, http.StatusBadRequest, err.Error())
	}
}
