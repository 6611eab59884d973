package telegram

import (
	"fmt"
	"strconv"
	"strings"
)

// Префиксы callback-данных и deep-link нагрузки. Каждая кнопка кодирует
// идентификатор адресата, чтобы чужие нажатия можно было отбросить.
const (
	languagePrefix = "lang"
	quizPrefix     = "quiz"
)

// LanguageCallbackData кодирует кнопку выбора языка: lang_<userID>_<code>.
func LanguageCallbackData(userID int64, lang string) string {
	return fmt.Sprintf("%s_%d_%s", languagePrefix, userID, lang)
}

// QuizCallbackData кодирует кнопку варианта ответа: quiz_<userID>_<index>.
func QuizCallbackData(userID int64, index int) string {
	return fmt.Sprintf("%s_%d_%d", quizPrefix, userID, index)
}

// StartQuizPayload — разобранная нагрузка deep-link команды
// /start quiz_<userID>_<lang>_<chatID>.
type StartQuizPayload struct {
	UserID   int64
	Language string
	ChatID   int64
}

// DeepLink строит ссылку на личный чат с ботом для прохождения квиза.
func DeepLink(botUsername string, userID int64, lang string, chatID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=%s_%d_%s_%d", botUsername, quizPrefix, userID, lang, chatID)
}

// ParseStartPayload разбирает нагрузку команды /start.
func ParseStartPayload(payload string) (*StartQuizPayload, error) {
	parts := strings.Split(payload, "_")
	if len(parts) != 4 || parts[0] != quizPrefix {
		return nil, fmt.Errorf("telegram: неверный формат нагрузки /start")
	}

	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("telegram: неверный идентификатор пользователя в /start: %w", err)
	}

	chatID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("telegram: неверный идентификатор чата в /start: %w", err)
	}

	return &StartQuizPayload{UserID: userID, Language: parts[2], ChatID: chatID}, nil
}

// parseLanguageCallback разбирает lang_<userID>_<code>.
func parseLanguageCallback(data string) (int64, string, bool) {
	parts := strings.Split(data, "_")
	if len(parts) != 3 || parts[0] != languagePrefix {
		return 0, "", false
	}
	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return userID, parts[2], true
}

// parseQuizCallback разбирает quiz_<userID>_<index>.
func parseQuizCallback(data string) (int64, int, bool) {
	parts := strings.Split(data, "_")
	if len(parts) != 3 || parts[0] != quizPrefix {
		return 0, 0, false
	}
	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	index, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, false
	}
	return userID, index, true
}
