package logger

import (
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Init инициализирует структурированный логгер.
func Init(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// Используем JSON формат для production, text для development
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// WithSession возвращает entry с полями верификационной сессии.
func WithSession(sessionID string, userID, chatID int64) *logrus.Entry {
	return Log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"user_id":    userID,
		"chat_id":    chatID,
	})
}
