package http

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/lumiai/lumi-router/internal/domain"
	"github.com/lumiai/lumi-router/internal/observability"
	"go.uber.org/zap"
)

// Handler handles HTTP requests.
type Handler struct {
	router   *domain.RouterService
	registry domain.ProviderRegistry
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(router *domain.RouterService, registry domain.ProviderRegistry) *Handler {
	return &Handler{
		router:   router,
		registry: registry,
	}
}

// errorBody is the uniform failure envelope. Details carries raw upstream
// text and is populated only when the router runs in development mode.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HandleChat processes chat requests.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Early validation.
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	clientID := clientIdentifier(r)
	ctx = observability.WithClientID(ctx, clientID)

	// Parse request.
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewInvalidInput("Invalid request body."))
		return
	}

	// Inject provider and model into context for downstream logging.
	ctx = observability.WithProvider(ctx, req.ProviderID)
	ctx = observability.WithModel(ctx, req.ModelID)

	logger := observability.FromContext(ctx)
	logger.Info("chat request received",
		zap.String("provider", req.ProviderID),
		zap.String("model", req.ModelID),
		zap.Int("history_len", len(req.History)),
	)

	result, err := h.router.Route(ctx, &req, clientID)
	if err != nil {
		var routerErr *domain.RouterError
		if !errors.As(err, &routerErr) {
			routerErr = &domain.RouterError{
				Kind:    domain.KindInternal,
				Message: "An unexpected error occurred. Please try again.",
			}
		}
		logger.Warn("chat request failed",
			zap.String("kind", string(routerErr.Kind)),
			zap.Int("status", routerErr.StatusCode()),
		)
		writeError(w, routerErr)
		return
	}

	logger.Info("chat request succeeded", zap.Bool("demo", result.Demo))

	writeJSON(w, http.StatusOK, result)
}

// HandleModels serves the provider catalogue so model pickers can populate.
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"providers": h.registry.List(),
	})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func writeError(w http.ResponseWriter, routerErr *domain.RouterError) {
	writeJSON(w, routerErr.StatusCode(), errorBody{
		Error:   routerErr.Message,
		Details: routerErr.Detail,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Status already written, nothing else to do.
		return
	}
}

// clientIdentifier derives the rate-limit key for a request: the first hop
// of X-Forwarded-For when present, otherwise the remote address host.
func clientIdentifier(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
