package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"

	"github.com/dalbodeule/loco-gate/internal/logging"
	"github.com/dalbodeule/loco-gate/internal/session"
)

// Handler 는 /api/v1/admin 관리 plane HTTP 엔드포인트를 제공합니다.
// 터널 레코드 CRUD(Service 가 있을 때)와 라이브 세션 조회, /metrics 를
// 하나의 리스너에 모아둡니다.
type Handler struct {
	Logger      logging.Logger
	AdminAPIKey string
	Service     TunnelService     // nil 이면 터널 레코드 API 는 503 을 반환
	Registry    *session.Registry // 라이브 세션 스냅샷용
}

// NewHandler 는 새로운 Handler 를 생성합니다.
func NewHandler(logger logging.Logger, adminAPIKey string, svc TunnelService, registry *session.Registry) *Handler {
	return &Handler{
		Logger:      logger.With(logging.Fields{"component": "admin_api"}),
		AdminAPIKey: strings.TrimSpace(adminAPIKey),
		Service:     svc,
		Registry:    registry,
	}
}

// RegisterRoutes 는 전달받은 mux 에 관리 API 라우트를 등록합니다.
//   - POST /api/v1/admin/tunnels/register
//   - POST /api/v1/admin/tunnels/unregister
//   - GET  /api/v1/admin/tunnels/exists
//   - GET  /api/v1/admin/tunnels/status
//   - GET  /api/v1/admin/sessions
//   - GET  /metrics (인증 없음)
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/v1/admin/tunnels/register", h.authMiddleware(http.HandlerFunc(h.handleTunnelRegister)))
	mux.Handle("/api/v1/admin/tunnels/unregister", h.authMiddleware(http.HandlerFunc(h.handleTunnelUnregister)))
	mux.Handle("/api/v1/admin/tunnels/exists", h.authMiddleware(http.HandlerFunc(h.handleTunnelExists)))
	mux.Handle("/api/v1/admin/tunnels/status", h.authMiddleware(http.HandlerFunc(h.handleTunnelStatus)))
	mux.Handle("/api/v1/admin/sessions", h.authMiddleware(http.HandlerFunc(h.handleSessions)))
	mux.Handle("/metrics", promhttp.Handler())
}

// NewAdminServer 는 H1/H2 를 지원하는 관리 plane HTTP 서버를 생성합니다.
func NewAdminServer(addr string, h *Handler) *http.Server {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	_ = http2.ConfigureServer(srv, &http2.Server{})
	return srv
}

// authMiddleware 는 Authorization: Bearer {ADMIN_API_KEY} 헤더를 검증합니다.
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.authenticate(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   "unauthorized",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) authenticate(r *http.Request) bool {
	if h.AdminAPIKey == "" {
		// Admin API 키가 설정되지 않았다면 모든 요청을 거부
		return false
	}
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authz, prefix))
	return token == h.AdminAPIKey
}

// requireService 는 DB 없이 기동한 서버에서 터널 레코드 API 호출을 막습니다.
func (h *Handler) requireService(w http.ResponseWriter) bool {
	if h.Service != nil {
		return true
	}
	h.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
		"success": false,
		"error":   "tunnel store not configured",
	})
	return false
}

type tunnelRegisterRequest struct {
	Subdomain string `json:"subdomain"`
	Memo      string `json:"memo"`
}

type tunnelRegisterResponse struct {
	AuthToken string `json:"auth_token,omitempty"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

func (h *Handler) handleTunnelRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeMethodNotAllowed(w)
		return
	}
	if !h.requireService(w) {
		return
	}

	var req tunnelRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warn("invalid register request body", logging.Fields{"error": err.Error()})
		h.writeJSON(w, http.StatusBadRequest, tunnelRegisterResponse{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}
	req.Subdomain = strings.TrimSpace(req.Subdomain)

	if req.Subdomain == "" {
		h.writeJSON(w, http.StatusBadRequest, tunnelRegisterResponse{
			Success: false,
			Error:   "subdomain is required",
		})
		return
	}

	token, err := h.Service.RegisterTunnel(r.Context(), req.Subdomain, req.Memo)
	if err != nil {
		if errors.Is(err, ErrInvalidSubdomain) {
			h.writeJSON(w, http.StatusBadRequest, tunnelRegisterResponse{
				Success: false,
				Error:   "invalid subdomain",
			})
			return
		}
		h.Logger.Error("failed to register tunnel", logging.Fields{
			"subdomain": req.Subdomain,
			"error":     err.Error(),
		})
		h.writeJSON(w, http.StatusInternalServerError, tunnelRegisterResponse{
			Success: false,
			Error:   "internal error",
		})
		return
	}

	h.writeJSON(w, http.StatusOK, tunnelRegisterResponse{
		Success:   true,
		AuthToken: token,
	})
}

type tunnelUnregisterRequest struct {
	Subdomain string `json:"subdomain"`
	AuthToken string `json:"auth_token"`
}

type tunnelUnregisterResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type tunnelExistsResponse struct {
	Success bool   `json:"success"`
	Exists  bool   `json:"exists"`
	Error   string `json:"error,omitempty"`
}

type tunnelStatusResponse struct {
	Success   bool      `json:"success"`
	Exists    bool      `json:"exists"`
	Subdomain string    `json:"subdomain,omitempty"`
	Memo      string    `json:"memo,omitempty"`
	Connected bool      `json:"connected"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func (h *Handler) handleTunnelUnregister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeMethodNotAllowed(w)
		return
	}
	if !h.requireService(w) {
		return
	}

	var req tunnelUnregisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warn("invalid unregister request body", logging.Fields{"error": err.Error()})
		h.writeJSON(w, http.StatusBadRequest, tunnelUnregisterResponse{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}
	req.Subdomain = strings.TrimSpace(req.Subdomain)
	req.AuthToken = strings.TrimSpace(req.AuthToken)

	if req.Subdomain == "" || req.AuthToken == "" {
		h.writeJSON(w, http.StatusBadRequest, tunnelUnregisterResponse{
			Success: false,
			Error:   "subdomain and auth_token are required",
		})
		return
	}

	if err := h.Service.UnregisterTunnel(r.Context(), req.Subdomain, req.AuthToken); err != nil {
		if errors.Is(err, ErrTunnelNotFound) {
			h.writeJSON(w, http.StatusNotFound, tunnelUnregisterResponse{
				Success: false,
				Error:   "tunnel not found",
			})
			return
		}
		h.Logger.Error("failed to unregister tunnel", logging.Fields{
			"subdomain": req.Subdomain,
			"error":     err.Error(),
		})
		h.writeJSON(w, http.StatusInternalServerError, tunnelUnregisterResponse{
			Success: false,
			Error:   "internal error",
		})
		return
	}

	h.writeJSON(w, http.StatusOK, tunnelUnregisterResponse{Success: true})
}

func (h *Handler) handleTunnelExists(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeMethodNotAllowed(w)
		return
	}
	if !h.requireService(w) {
		return
	}

	subdomain := strings.TrimSpace(r.URL.Query().Get("subdomain"))
	if subdomain == "" {
		h.writeJSON(w, http.StatusBadRequest, tunnelExistsResponse{
			Success: false,
			Error:   "subdomain is required",
		})
		return
	}

	exists, err := h.Service.IsTunnelRegistered(r.Context(), subdomain)
	if err != nil {
		h.Logger.Error("failed to check tunnel existence", logging.Fields{
			"subdomain": subdomain,
			"error":     err.Error(),
		})
		h.writeJSON(w, http.StatusInternalServerError, tunnelExistsResponse{
			Success: false,
			Error:   "internal error",
		})
		return
	}

	h.writeJSON(w, http.StatusOK, tunnelExistsResponse{
		Success: true,
		Exists:  exists,
	})
}

func (h *Handler) handleTunnelStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeMethodNotAllowed(w)
		return
	}
	if !h.requireService(w) {
		return
	}

	subdomain := strings.TrimSpace(r.URL.Query().Get("subdomain"))
	if subdomain == "" {
		h.writeJSON(w, http.StatusBadRequest, tunnelStatusResponse{
			Success: false,
			Error:   "subdomain is required",
		})
		return
	}

	row, err := h.Service.GetTunnel(r.Context(), subdomain)
	if err != nil {
		if errors.Is(err, ErrTunnelNotFound) {
			h.writeJSON(w, http.StatusOK, tunnelStatusResponse{
				Success: true,
				Exists:  false,
			})
			return
		}
		h.Logger.Error("failed to get tunnel status", logging.Fields{
			"subdomain": subdomain,
			"error":     err.Error(),
		})
		h.writeJSON(w, http.StatusInternalServerError, tunnelStatusResponse{
			Success: false,
			Error:   "internal error",
		})
		return
	}

	connected := false
	if h.Registry != nil {
		_, lookupErr := h.Registry.Lookup(row.Subdomain)
		connected = lookupErr == nil
	}

	h.writeJSON(w, http.StatusOK, tunnelStatusResponse{
		Success:   true,
		Exists:    true,
		Subdomain: row.Subdomain,
		Memo:      row.Memo,
		Connected: connected,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	})
}

type sessionsResponse struct {
	Success  bool               `json:"success"`
	Sessions []session.Snapshot `json:"sessions"`
}

// handleSessions 는 현재 라이브 세션 요약을 반환합니다.
func (h *Handler) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeMethodNotAllowed(w)
		return
	}
	if h.Registry == nil {
		h.writeJSON(w, http.StatusOK, sessionsResponse{Success: true, Sessions: []session.Snapshot{}})
		return
	}
	h.writeJSON(w, http.StatusOK, sessionsResponse{
		Success:  true,
		Sessions: h.Registry.Snapshots(),
	})
}

func (h *Handler) writeMethodNotAllowed(w http.ResponseWriter) {
	h.writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
		"success": false,
		"error":   "method not allowed",
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("failed to write json response", logging.Fields{"error": err.Error()})
	}
}
