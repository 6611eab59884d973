package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Вариант события определяется один раз на границе с платформой; дальше
// диспетчер вызывает отдельный обработчик для каждого варианта, без
// разбора сырых обновлений в бизнес-логике.

// JoinEvent — в группу вступил новый участник.
type JoinEvent struct {
	ChatID   int64
	UserID   int64
	UserName string
	IsBot    bool
}

// LanguageChoiceEvent — нажата кнопка выбора языка.
type LanguageChoiceEvent struct {
	CallbackID   string
	ChatID       int64
	MessageID    int
	PresserID    int64
	PresserName  string
	TargetUserID int64
	Language     string
}

// QuizAnswerEvent — нажата кнопка варианта ответа в группе.
type QuizAnswerEvent struct {
	CallbackID   string
	ChatID       int64
	MessageID    int
	PresserID    int64
	PresserName  string
	TargetUserID int64
	AnswerIndex  int
}

// PollAnswerEvent — получен ответ на quiz-опрос в личных сообщениях.
type PollAnswerEvent struct {
	PollID      string
	UserID      int64
	UserName    string
	OptionIndex int
}

// PollClosedEvent — опрос закрылся по open_period; запасной путь таймаута.
type PollClosedEvent struct {
	PollID string
}

// GroupMessageEvent — обычное сообщение в группе.
type GroupMessageEvent struct {
	ChatID    int64
	UserID    int64
	MessageID int
	IsBot     bool
}

// StartCommandEvent — команда /start в личном чате.
type StartCommandEvent struct {
	ChatID   int64
	UserID   int64
	UserName string
	Payload  string
}

// Event — размеченное объединение: заполнено ровно одно поле.
type Event struct {
	Join           *JoinEvent
	LanguageChoice *LanguageChoiceEvent
	QuizAnswer     *QuizAnswerEvent
	PollAnswer     *PollAnswerEvent
	PollClosed     *PollClosedEvent
	GroupMessage   *GroupMessageEvent
	StartCommand   *StartCommandEvent
}

// MapUpdate переводит сырое обновление в событие. Возвращает nil для
// обновлений, которые бота не касаются.
func MapUpdate(u tgbotapi.Update) *Event {
	switch {
	case u.ChatMember != nil:
		return mapChatMember(u.ChatMember)
	case u.CallbackQuery != nil:
		return mapCallback(u.CallbackQuery)
	case u.PollAnswer != nil:
		return mapPollAnswer(u.PollAnswer)
	case u.Poll != nil:
		if !u.Poll.IsClosed {
			return nil
		}
		return &Event{PollClosed: &PollClosedEvent{PollID: u.Poll.ID}}
	case u.Message != nil:
		return mapMessage(u.Message)
	}
	return nil
}

func mapChatMember(cm *tgbotapi.ChatMemberUpdated) *Event {
	oldStatus := cm.OldChatMember.Status
	newStatus := cm.NewChatMember.Status
	if (oldStatus != "left" && oldStatus != "kicked") || newStatus != "member" {
		return nil
	}

	user := cm.NewChatMember.User
	if user == nil {
		return nil
	}

	return &Event{Join: &JoinEvent{
		ChatID:   cm.Chat.ID,
		UserID:   user.ID,
		UserName: user.FirstName,
		IsBot:    user.IsBot,
	}}
}

func mapCallback(cb *tgbotapi.CallbackQuery) *Event {
	if cb.From == nil || cb.Message == nil {
		return nil
	}

	if target, lang, ok := parseLanguageCallback(cb.Data); ok {
		return &Event{LanguageChoice: &LanguageChoiceEvent{
			CallbackID:   cb.ID,
			ChatID:       cb.Message.Chat.ID,
			MessageID:    cb.Message.MessageID,
			PresserID:    cb.From.ID,
			PresserName:  cb.From.FirstName,
			TargetUserID: target,
			Language:     lang,
		}}
	}

	if target, index, ok := parseQuizCallback(cb.Data); ok {
		return &Event{QuizAnswer: &QuizAnswerEvent{
			CallbackID:   cb.ID,
			ChatID:       cb.Message.Chat.ID,
			MessageID:    cb.Message.MessageID,
			PresserID:    cb.From.ID,
			PresserName:  cb.From.FirstName,
			TargetUserID: target,
			AnswerIndex:  index,
		}}
	}

	return nil
}

func mapPollAnswer(pa *tgbotapi.PollAnswer) *Event {
	if len(pa.OptionIDs) == 0 {
		return nil
	}

	return &Event{PollAnswer: &PollAnswerEvent{
		PollID:      pa.PollID,
		UserID:      pa.User.ID,
		UserName:    pa.User.FirstName,
		OptionIndex: pa.OptionIDs[0],
	}}
}

func mapMessage(msg *tgbotapi.Message) *Event {
	if msg.From == nil {
		return nil
	}

	if msg.Chat.IsPrivate() {
		if msg.IsCommand() && msg.Command() == "start" {
			return &Event{StartCommand: &StartCommandEvent{
				ChatID:   msg.Chat.ID,
				UserID:   msg.From.ID,
				UserName: msg.From.FirstName,
				Payload:  msg.CommandArguments(),
			}}
		}
		return nil
	}

	if !msg.Chat.IsGroup() && !msg.Chat.IsSuperGroup() {
		return nil
	}

	return &Event{GroupMessage: &GroupMessageEvent{
		ChatID:    msg.Chat.ID,
		UserID:    msg.From.ID,
		MessageID: msg.MessageID,
		IsBot:     msg.From.IsBot,
	}}
}
