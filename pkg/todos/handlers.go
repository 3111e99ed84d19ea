package todos

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/todos/pkg/httputil"
	"github.com/platinummonkey/todos/pkg/observability"
	"github.com/platinummonkey/todos/pkg/users"
)

// Handlers provides HTTP handlers for the todo API
type Handlers struct {
	service *Service
	metrics *observability.Metrics
}

// NewHandlers creates new todo handlers
func NewHandlers(service *Service, metrics *observability.Metrics) *Handlers {
	return &Handlers{
		service: service,
		metrics: metrics,
	}
}

// RegisterRoutes registers all todo routes behind the guard middleware
func (h *Handlers) RegisterRoutes(r *mux.Router, guard func(http.Handler) http.Handler) {
	r.Handle("/todos", guard(http.HandlerFunc(h.Create))).Methods("POST")
	r.Handle("/todos", guard(http.HandlerFunc(h.List))).Methods("GET")
	r.Handle("/todos/{id}", guard(http.HandlerFunc(h.Get))).Methods("GET")
	r.Handle("/todos/{id}", guard(http.HandlerFunc(h.Delete))).Methods("DELETE")
	r.Handle("/todos/{id}", guard(http.HandlerFunc(h.Update))).Methods("PATCH")
}

// todoResponse wraps a single todo document
type todoResponse struct {
	Todo *Todo `json:"todo"`
}

// todosResponse wraps a todo listing
type todosResponse struct {
	Todos []*Todo `json:"todos"`
}

// Create handles POST /todos
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	session := users.SessionFromContext(r.Context())
	if session == nil {
		httputil.WriteUnauthorized(w)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := httputil.ParseJSON(r, &req); err != nil {
		httputil.WriteErrors(w, http.StatusBadRequest, "INVALID_PROPERTIES")
		return
	}

	todo, err := h.service.Create(r.Context(), session.User.ID, req.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.TodosCreatedTotal.Inc()
	}
	httputil.WriteSuccess(w, todo)
}

// List handles GET /todos
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	session := users.SessionFromContext(r.Context())
	if session == nil {
		httputil.WriteUnauthorized(w)
		return
	}

	list, err := h.service.List(r.Context(), session.User.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if list == nil {
		list = []*Todo{}
	}
	httputil.WriteSuccess(w, todosResponse{Todos: list})
}

// Get handles GET /todos/{id}
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	session := users.SessionFromContext(r.Context())
	if session == nil {
		httputil.WriteUnauthorized(w)
		return
	}

	todo, err := h.service.Get(r.Context(), httputil.PathVar(r, "id"), session.User.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteSuccess(w, todoResponse{Todo: todo})
}

// Delete handles DELETE /todos/{id} and returns the deleted document
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	session := users.SessionFromContext(r.Context())
	if session == nil {
		httputil.WriteUnauthorized(w)
		return
	}

	todo, err := h.service.Delete(r.Context(), httputil.PathVar(r, "id"), session.User.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteSuccess(w, todoResponse{Todo: todo})
}

// Update handles PATCH /todos/{id}
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	session := users.SessionFromContext(r.Context())
	if session == nil {
		httputil.WriteUnauthorized(w)
		return
	}

	body, err := httputil.ReadBody(r)
	if err != nil {
		httputil.WriteErrors(w, http.StatusBadRequest, "INVALID_PROPERTIES")
		return
	}

	todo, err := h.service.Update(r.Context(), httputil.PathVar(r, "id"), session.User.ID, body)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteSuccess(w, todoResponse{Todo: todo})
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidID):
		// Preserved contract: a malformed id answers 404 with an error
		// list, not a 400.
		httputil.WriteErrors(w, http.StatusNotFound, "INVALID_ID")
	case errors.Is(err, ErrNotFound):
		httputil.WriteNotFound(w)
	case errors.Is(err, ErrInvalidProperties):
		httputil.WriteErrors(w, http.StatusBadRequest, "INVALID_PROPERTIES")
	case errors.Is(err, ErrMissingText):
		httputil.WriteErrors(w, http.StatusBadRequest, "TEXT_REQUIRED")
	default:
		// Unknown storage failures surface as a terminal 400 with the raw
		// error serialized.
		httputil.WriteErrors(w, http.StatusBadRequest, err.Error())
	}
}
