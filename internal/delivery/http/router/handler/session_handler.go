package handler

import (
	"log/slog"
	"net/http"
	"time"

	"coachly/internal/delivery/http/response"
	"coachly/internal/domain/entity"
	"coachly/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionHandler holds dependencies for session management handlers.
type SessionHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		uc:     uc,
		logger: logger,
	}
}

// SessionResponse is the public view of an active session.
type SessionResponse struct {
	ID         uuid.UUID `json:"id"`
	DeviceInfo string    `json:"device_info"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func newSessionResponses(sessions []*entity.SessionInfo) []*SessionResponse {
	out := make([]*SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, &SessionResponse{
			ID:         s.ID,
			DeviceInfo: s.DeviceInfo,
			CreatedAt:  s.CreatedAt,
			ExpiresAt:  s.ExpiresAt,
		})
	}

	return out
}

// GetSessions handles listing the current user's active sessions.
func (h *SessionHandler) GetSessions(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	sessions, err := h.uc.GetActiveSessions(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newSessionResponses(sessions), "Sessions retrieved successfully")
}

// RevokeSession handles ending one of the current user's sessions.
func (h *SessionHandler) RevokeSession(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	if err := h.uc.RevokeSession(c.Request().Context(), userID, sessionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Session revoked successfully"}, "Session revoked successfully")
}

// RevokeAllSessions handles ending every session of the current user.
func (h *SessionHandler) RevokeAllSessions(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	if err := h.uc.RevokeAllSessions(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "All sessions revoked successfully"}, "All sessions revoked successfully")
}
