package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/quizgate-bot/internal/logger"
)

// SessionCounter сообщает число активных сессий проверки.
type SessionCounter interface {
	ActiveSessions() int
}

// BanCounter сообщает число действующих ограничений.
type BanCounter interface {
	CountActive(ctx context.Context) (int, error)
}

// PassedCounter сообщает число прошедших проверку.
type PassedCounter interface {
	CountPassed(ctx context.Context) (int, error)
}

// StatusHandler отдаёт операционную сводку бота.
type StatusHandler struct {
	sessions  SessionCounter
	bans      BanCounter
	passed    PassedCounter
	startedAt time.Time
}

// NewStatusHandler создаёт новый status handler.
func NewStatusHandler(sessions SessionCounter, bans BanCounter, passed PassedCounter) *StatusHandler {
	return &StatusHandler{
		sessions:  sessions,
		bans:      bans,
		passed:    passed,
		startedAt: time.Now(),
	}
}

// StatusResponse представляет ответ GET /api/v1/status.
type StatusResponse struct {
	UptimeSeconds  int64 `json:"uptime_seconds"`
	ActiveSessions int   `json:"active_sessions"`
	ActiveBans     int   `json:"active_bans"`
	PassedUsers    int   `json:"passed_users"`
}

// Status обрабатывает GET /api/v1/status.
func (h *StatusHandler) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	bans, err := h.bans.CountActive(ctx)
	if err != nil {
		logger.Log.Errorf("status: не удалось посчитать ограничения: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
		return
	}

	passed, err := h.passed.CountPassed(ctx)
	if err != nil {
		logger.Log.Errorf("status: не удалось посчитать прошедших проверку: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		UptimeSeconds:  int64(time.Since(h.startedAt).Seconds()),
		ActiveSessions: h.sessions.ActiveSessions(),
		ActiveBans:     bans,
		PassedUsers:    passed,
	})
}
