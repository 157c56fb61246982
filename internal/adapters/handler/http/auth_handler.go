package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	tokenTTL     time.Duration
	cookieDomain string
	logger       *slog.Logger
}

func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration, cookieDomain string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenTTL:     tokenTTL,
		cookieDomain: cookieDomain,
		logger:       logger,
	}
}

type loginRequest struct {
	NationalID string `json:"national_id"`
	Password   string `json:"password"`
}

type presidentAccessRequest struct {
	StationID  string `json:"station_id"`
	NationalID string `json:"national_id"`
}

type tokenResponse struct {
	Token     string            `json:"token"`
	ExpiresIn int               `json:"expires_in"`
	Principal *domain.Principal `json:"principal"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if req.NationalID == "" || req.Password == "" {
		respondError(w, r, h.logger, domain.ErrMissingField)
		return
	}

	token, principal, err := h.authService.Login(r.Context(), req.NationalID, req.Password)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	h.respondToken(w, token, principal)
}

// PresidentAccess opens a station-scoped session for the president assigned
// to an open station of today.
func (h *AuthHandler) PresidentAccess(w http.ResponseWriter, r *http.Request) {
	var req presidentAccessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	stationID, err := uuid.Parse(req.StationID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid station id")
		return
	}

	token, principal, err := h.authService.PresidentAccess(r.Context(), stationID, req.NationalID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	h.respondToken(w, token, principal)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())
	writeJSON(w, http.StatusOK, principal)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) respondToken(w http.ResponseWriter, token string, principal *domain.Principal) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.tokenTTL.Seconds()),
	})
	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresIn: int(h.tokenTTL.Seconds()),
		Principal: principal,
	})
}
