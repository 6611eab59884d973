package telegram

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ignatzorin/quizgate-bot/internal/logger"
)

// Типизированные ошибки платформы. Определяются один раз здесь, бизнес-логика
// сравнивает их через errors.Is и не разбирает текст ответов API.
var (
	// ErrMessageNotFound — сообщение уже удалено или недоступно.
	ErrMessageNotFound = errors.New("telegram: message not found")
	// ErrTopicClosed — тред форума закрыт для записи.
	ErrTopicClosed = errors.New("telegram: topic closed")
)

// Button — кнопка inline-клавиатуры. Заполняется либо CallbackData, либо URL.
type Button struct {
	Text         string
	CallbackData string
	URL          string
}

// Gateway — тонкая обёртка над Bot API: отправка и удаление сообщений,
// квиз-опросы и модерационные действия.
type Gateway struct {
	bot              *tgbotapi.BotAPI
	fallbackThreadID int
}

// NewGateway создаёт подключение к Bot API.
func NewGateway(token string, fallbackThreadID int) (*Gateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: не удалось создать клиента: %w", err)
	}

	return &Gateway{bot: bot, fallbackThreadID: fallbackThreadID}, nil
}

// Username возвращает username бота для deep-link кнопок.
func (g *Gateway) Username() string {
	return g.bot.Self.UserName
}

// Updates возвращает канал обновлений long polling.
func (g *Gateway) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message", "callback_query", "poll", "poll_answer", "chat_member"}
	return g.bot.GetUpdatesChan(u)
}

// StopUpdates останавливает long polling.
func (g *Gateway) StopUpdates() {
	g.bot.StopReceivingUpdates()
}

// SendMessage отправляет HTML-сообщение, опционально в тред форума и с
// inline-клавиатурой. Если тред закрыт, повторяет отправку в резервный тред.
func (g *Gateway) SendMessage(chatID int64, threadID int, text string, buttons [][]Button) (int, error) {
	messageID, err := g.sendMessage(chatID, threadID, text, buttons)
	if errors.Is(err, ErrTopicClosed) && threadID != g.fallbackThreadID {
		logger.Log.WithField("chat_id", chatID).Warnf(
			"telegram: тред %d закрыт, отправляем в резервный %d", threadID, g.fallbackThreadID)
		return g.sendMessage(chatID, g.fallbackThreadID, text, buttons)
	}
	return messageID, err
}

func (g *Gateway) sendMessage(chatID int64, threadID int, text string, buttons [][]Button) (int, error) {
	params := make(tgbotapi.Params)
	params.AddNonZero64("chat_id", chatID)
	params.AddNonEmpty("text", text)
	params.AddNonEmpty("parse_mode", tgbotapi.ModeHTML)
	params.AddBool("disable_web_page_preview", true)
	params.AddNonZero("message_thread_id", threadID)

	if len(buttons) > 0 {
		if err := params.AddInterface("reply_markup", inlineKeyboard(buttons)); err != nil {
			return 0, fmt.Errorf("telegram: не удалось сериализовать клавиатуру: %w", err)
		}
	}

	resp, err := g.bot.MakeRequest("sendMessage", params)
	if err != nil {
		return 0, mapError(err)
	}

	var msg tgbotapi.Message
	if err := json.Unmarshal(resp.Result, &msg); err != nil {
		return 0, fmt.Errorf("telegram: не удалось распарсить ответ sendMessage: %w", err)
	}

	return msg.MessageID, nil
}

// EditMessage заменяет текст сообщения.
func (g *Gateway) EditMessage(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := g.bot.Request(edit); err != nil {
		return mapError(err)
	}
	return nil
}

// DeleteMessage удаляет сообщение. Уже удалённое сообщение отражается как
// ErrMessageNotFound, это штатная ситуация.
func (g *Gateway) DeleteMessage(chatID int64, messageID int) error {
	if _, err := g.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return mapError(err)
	}
	return nil
}

// SendQuizPoll отправляет неанонимный quiz-опрос с перемешанными вариантами.
func (g *Gateway) SendQuizPoll(chatID int64, question string, options []string, correctIndex int, openPeriod time.Duration) (string, int, error) {
	poll := tgbotapi.NewPoll(chatID, question, options...)
	poll.Type = "quiz"
	poll.CorrectOptionID = int64(correctIndex)
	poll.OpenPeriod = int(openPeriod.Seconds())
	poll.IsAnonymous = false

	msg, err := g.bot.Send(poll)
	if err != nil {
		return "", 0, mapError(err)
	}
	if msg.Poll == nil {
		return "", 0, fmt.Errorf("telegram: ответ sendPoll не содержит опроса")
	}

	return msg.Poll.ID, msg.MessageID, nil
}

// AnswerCallback подтверждает нажатие кнопки, чтобы убрать "часики" у клиента.
func (g *Gateway) AnswerCallback(callbackID string) error {
	if _, err := g.bot.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return mapError(err)
	}
	return nil
}

// Restrict запрещает пользователю отправлять сообщения до указанного момента.
func (g *Gateway) Restrict(chatID, userID int64, until time.Time) error {
	restrict := tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
		UntilDate:        until.Unix(),
		Permissions:      &tgbotapi.ChatPermissions{CanSendMessages: false},
	}
	if _, err := g.bot.Request(restrict); err != nil {
		return mapError(err)
	}
	return nil
}

// Kick исключает пользователя из чата.
func (g *Gateway) Kick(chatID, userID int64) error {
	ban := tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
	}
	if _, err := g.bot.Request(ban); err != nil {
		return mapError(err)
	}
	return nil
}

// Unban снимает исключение, чтобы пользователь мог вернуться: это кик,
// а не вечный бан.
func (g *Gateway) Unban(chatID, userID int64) error {
	unban := tgbotapi.UnbanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
		OnlyIfBanned:     true,
	}
	if _, err := g.bot.Request(unban); err != nil {
		return mapError(err)
	}
	return nil
}

// inlineKeyboard переводит кнопки в формат Bot API.
func inlineKeyboard(buttons [][]Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, row := range buttons {
		var r []tgbotapi.InlineKeyboardButton
		for _, b := range row {
			if b.URL != "" {
				r = append(r, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
			} else {
				r = append(r, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.CallbackData))
			}
		}
		rows = append(rows, r)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// mapError переводит ответы API в типизированные ошибки.
func mapError(err error) error {
	var tgErr *tgbotapi.Error
	if !errors.As(err, &tgErr) {
		return err
	}

	msg := strings.ToLower(tgErr.Message)
	switch {
	case strings.Contains(msg, "message to delete not found"),
		strings.Contains(msg, "message to edit not found"),
		strings.Contains(msg, "message can't be deleted"),
		strings.Contains(msg, "message is not modified"):
		return ErrMessageNotFound
	case strings.Contains(msg, "topic_closed"):
		return ErrTopicClosed
	}

	return err
}
