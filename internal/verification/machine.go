package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/quizgate-bot/internal/config"
	"github.com/ignatzorin/quizgate-bot/internal/logger"
	"github.com/ignatzorin/quizgate-bot/internal/models"
	"github.com/ignatzorin/quizgate-bot/internal/quiz"
	"github.com/ignatzorin/quizgate-bot/internal/repository"
	"github.com/ignatzorin/quizgate-bot/internal/scheduler"
	"github.com/ignatzorin/quizgate-bot/internal/telegram"
)

// Gateway описывает взаимодействие машины с чат-платформой.
type Gateway interface {
	SendMessage(chatID int64, threadID int, text string, buttons [][]telegram.Button) (int, error)
	EditMessage(chatID int64, messageID int, text string) error
	DeleteMessage(chatID int64, messageID int) error
	SendQuizPoll(chatID int64, question string, options []string, correctIndex int, openPeriod time.Duration) (string, int, error)
	AnswerCallback(callbackID string) error
	Username() string
}

// VerifiedStore описывает долговременный учёт прошедших проверку.
type VerifiedStore interface {
	IsPassed(ctx context.Context, userID int64) (bool, error)
	MarkPassed(ctx context.Context, userID int64) error
}

// BanChecker описывает проверку действующих ограничений.
type BanChecker interface {
	IsBanned(ctx context.Context, userID int64) (bool, error)
}

// PollIndex описывает учёт активных опросов при доставке квиза в личку.
type PollIndex interface {
	Add(ctx context.Context, poll *models.ActivePoll) error
	Get(ctx context.Context, pollID string) (*models.ActivePoll, error)
	Remove(ctx context.Context, pollID string) error
}

// Moderator запускает цепочку наказания для провалившего проверку.
type Moderator interface {
	Punish(chatID, userID int64) error
}

// Scheduler ставит отложенные действия.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) scheduler.Handle
}

// Config — тайминги и область действия машины.
type Config struct {
	AllowedChatID    int64
	FallbackThreadID int
	Delivery         string

	LanguageTimeout    time.Duration
	QuizTimeout        time.Duration
	LowTimeWarningLead time.Duration

	DeleteDelaySuccess time.Duration
	DeleteDelayFailure time.Duration
	DeleteDelayTimeout time.Duration
}

// Machine владеет сессиями проверки и всеми переходами между фазами.
type Machine struct {
	cfg       Config
	gw        Gateway
	verified  VerifiedStore
	bans      BanChecker
	polls     PollIndex
	moderator Moderator
	sched     Scheduler
	pool      *quiz.Pool
	dialogs   quiz.Dialogs
	store     *Store
}

// NewMachine создаёт машину проверки.
func NewMachine(
	cfg Config,
	gw Gateway,
	verified VerifiedStore,
	bans BanChecker,
	polls PollIndex,
	moderator Moderator,
	sched Scheduler,
	pool *quiz.Pool,
	dialogs quiz.Dialogs,
) *Machine {
	return &Machine{
		cfg:       cfg,
		gw:        gw,
		verified:  verified,
		bans:      bans,
		polls:     polls,
		moderator: moderator,
		sched:     sched,
		pool:      pool,
		dialogs:   dialogs,
		store:     NewStore(),
	}
}

// ActiveSessions возвращает количество незавершённых сессий.
func (m *Machine) ActiveSessions() int {
	return m.store.Len()
}

// HandleJoin обрабатывает вступление нового участника: создаёт сессию и
// отправляет выбор языка. Повторное событие для живой сессии — no-op.
func (m *Machine) HandleJoin(ctx context.Context, ev *telegram.JoinEvent) error {
	if ev.ChatID != m.cfg.AllowedChatID || ev.IsBot {
		return nil
	}

	unlock := m.store.Lock(ev.UserID)
	defer unlock()

	if existing := m.store.Get(ev.UserID); existing != nil && !existing.resolved() {
		return nil
	}

	passed, err := m.verified.IsPassed(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("verification: не удалось проверить статус пользователя: %w", err)
	}
	if passed {
		return nil
	}

	banned, err := m.bans.IsBanned(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("verification: не удалось проверить ограничения пользователя: %w", err)
	}
	if banned {
		return nil
	}

	session := &Session{
		ID:       uuid.NewString(),
		UserID:   ev.UserID,
		UserName: ev.UserName,
		ChatID:   ev.ChatID,
		ThreadID: m.cfg.FallbackThreadID,
		Phase:    PhaseAwaitingLanguage,
	}

	mention := quiz.Mention(ev.UserID, ev.UserName)
	text := quiz.Format(m.dialogs.LanguageSelection, mention)

	var row []telegram.Button
	for _, lang := range quiz.Languages {
		row = append(row, telegram.Button{
			Text:         quiz.LanguageLabels[lang],
			CallbackData: telegram.LanguageCallbackData(ev.UserID, lang),
		})
	}

	// Отправка приглашения несущая: без неё сессия не создаётся.
	messageID, err := m.gw.SendMessage(session.ChatID, session.ThreadID, text, [][]telegram.Button{row})
	if err != nil {
		return fmt.Errorf("verification: не удалось отправить выбор языка: %w", err)
	}

	session.BotMessageIDs = append(session.BotMessageIDs, messageID)
	m.store.Put(session)

	userID := ev.UserID
	session.timer = m.sched.Schedule(m.cfg.LanguageTimeout, func() {
		m.languageTimeout(userID)
	})

	logger.WithSession(session.ID, session.UserID, session.ChatID).
		WithField("phase", session.Phase.String()).
		Info("verification: сессия создана, отправлен выбор языка")

	return nil
}

// HandleLanguageChoice обрабатывает нажатие кнопки языка.
func (m *Machine) HandleLanguageChoice(ctx context.Context, ev *telegram.LanguageChoiceEvent) error {
	m.answerCallback(ev.CallbackID)

	// Чужое нажатие игнорируется молча: кнопка адресована конкретному
	// пользователю.
	if ev.PresserID != ev.TargetUserID || ev.ChatID != m.cfg.AllowedChatID {
		return nil
	}

	unlock := m.store.Lock(ev.PresserID)
	defer unlock()

	session := m.store.Get(ev.PresserID)
	if session == nil || session.Phase != PhaseAwaitingLanguage {
		logger.Log.WithField("user_id", ev.PresserID).Debug("verification: выбор языка вне фазы, игнорируем")
		return nil
	}

	lang := ev.Language
	mention := quiz.Mention(ev.PresserID, ev.PresserName)
	session.UserName = ev.PresserName

	if m.cfg.Delivery == config.DeliveryGroup {
		return m.startGroupQuiz(session, lang, ev.MessageID, mention)
	}
	return m.startPrivateQuiz(session, lang, ev.MessageID, mention)
}

// startGroupQuiz отправляет квиз inline-кнопками прямо в группу.
func (m *Machine) startGroupQuiz(session *Session, lang string, promptMessageID int, mention string) error {
	challenge, err := m.pool.Pick(lang)
	if err != nil {
		return fmt.Errorf("verification: не удалось выбрать вопрос: %w", err)
	}

	var rows [][]telegram.Button
	for i, option := range challenge.Options {
		rows = append(rows, []telegram.Button{{
			Text:         option,
			CallbackData: telegram.QuizCallbackData(session.UserID, i),
		}})
	}

	// Несущая отправка: при неудаче переход не выполняется, языковой
	// таймер продолжает работать.
	quizMessageID, err := m.gw.SendMessage(session.ChatID, session.ThreadID, challenge.Text, rows)
	if err != nil {
		return fmt.Errorf("verification: не удалось отправить квиз: %w", err)
	}

	m.confirmLanguage(session, lang, promptMessageID, mention)

	session.cancelTimers()
	session.Language = lang
	session.Challenge = challenge
	session.Phase = PhaseAwaitingAnswer
	session.BotMessageIDs = append(session.BotMessageIDs, quizMessageID)

	m.armQuizTimers(session)

	logger.WithSession(session.ID, session.UserID, session.ChatID).
		WithField("phase", session.Phase.String()).
		Info("verification: квиз отправлен в группу")

	return nil
}

// startPrivateQuiz публикует в группе кнопку-ссылку на личный чат с ботом.
func (m *Machine) startPrivateQuiz(session *Session, lang string, promptMessageID int, mention string) error {
	instruction := quiz.Format(m.dialogs.T("quiz_instruction", lang), mention)
	link := telegram.DeepLink(m.gw.Username(), session.UserID, lang, session.ChatID)
	buttons := [][]telegram.Button{{{
		Text: m.dialogs.T("quiz_button", lang),
		URL:  link,
	}}}

	linkMessageID, err := m.gw.SendMessage(session.ChatID, session.ThreadID, instruction, buttons)
	if err != nil {
		return fmt.Errorf("verification: не удалось отправить ссылку на квиз: %w", err)
	}

	m.confirmLanguage(session, lang, promptMessageID, mention)

	session.cancelTimers()
	session.Language = lang
	session.Phase = PhaseAwaitingAnswer
	session.BotMessageIDs = append(session.BotMessageIDs, linkMessageID)

	// Пока пользователь не открыл личку, действует окно на переход по
	// ссылке; отправка опроса заменит этот таймер на таймер ответа.
	userID := session.UserID
	session.timer = m.sched.Schedule(m.cfg.LanguageTimeout, func() {
		m.quizTimeout(userID)
	})

	logger.WithSession(session.ID, session.UserID, session.ChatID).
		WithField("phase", session.Phase.String()).
		Info("verification: отправлена ссылка на квиз в личке")

	return nil
}

// confirmLanguage заменяет приглашение подтверждением выбора.
func (m *Machine) confirmLanguage(session *Session, lang string, promptMessageID int, mention string) {
	confirmation := quiz.Format(m.dialogs.T("language_set", lang), mention)
	if err := m.gw.EditMessage(session.ChatID, promptMessageID, confirmation); err != nil &&
		!errors.Is(err, telegram.ErrMessageNotFound) {
		logger.Log.WithField("user_id", session.UserID).Warnf("verification: не удалось обновить приглашение: %v", err)
	}
}

// HandleStartCommand обрабатывает /start в личке: по deep-link нагрузке
// отправляет квиз-опрос.
func (m *Machine) HandleStartCommand(ctx context.Context, ev *telegram.StartCommandEvent) error {
	if ev.Payload == "" {
		m.replyPrivate(ev.ChatID, m.dialogs.T("start_welcome", "en"))
		return nil
	}

	payload, err := telegram.ParseStartPayload(ev.Payload)
	if err != nil {
		m.replyPrivate(ev.ChatID, m.dialogs.T("start_invalid", "en"))
		return nil
	}

	if payload.UserID != ev.UserID {
		m.replyPrivate(ev.ChatID, m.dialogs.T("start_not_yours", payload.Language))
		return nil
	}

	unlock := m.store.Lock(ev.UserID)
	defer unlock()

	session := m.store.Get(ev.UserID)
	if session == nil || session.Phase != PhaseAwaitingAnswer || session.ChatID != payload.ChatID {
		m.replyPrivate(ev.ChatID, m.dialogs.T("start_invalid", payload.Language))
		return nil
	}
	if session.PollID != "" {
		// Опрос уже отправлен, повторный /start ничего не делает.
		return nil
	}

	lang := session.Language
	challenge, err := m.pool.Pick(lang)
	if err != nil {
		return fmt.Errorf("verification: не удалось выбрать вопрос: %w", err)
	}

	mention := quiz.Mention(ev.UserID, ev.UserName)
	greeting := quiz.Format(m.dialogs.T("greeting", lang), mention)
	greetingID, err := m.gw.SendMessage(ev.ChatID, 0, greeting, nil)
	if err != nil {
		return fmt.Errorf("verification: не удалось отправить приветствие в личке: %w", err)
	}

	pollID, pollMessageID, err := m.gw.SendQuizPoll(
		ev.ChatID, challenge.Text, challenge.Options, challenge.CorrectIndex, m.cfg.QuizTimeout)
	if err != nil {
		m.deleteNow(ev.ChatID, greetingID)
		return fmt.Errorf("verification: не удалось отправить опрос: %w", err)
	}

	// Без записи в индексе ответ на опрос не будет распознан, поэтому
	// неудача отменяет доставку целиком.
	record := &models.ActivePoll{
		PollID:    pollID,
		UserID:    ev.UserID,
		ChatID:    ev.ChatID,
		MessageID: pollMessageID,
	}
	if err := m.polls.Add(ctx, record); err != nil {
		m.deleteNow(ev.ChatID, pollMessageID)
		m.deleteNow(ev.ChatID, greetingID)
		return fmt.Errorf("verification: не удалось зарегистрировать опрос: %w", err)
	}

	session.cancelTimers()
	session.Challenge = challenge
	session.PMChatID = ev.ChatID
	session.PollID = pollID
	session.PollMessageID = pollMessageID
	session.GreetingMessageID = greetingID

	m.armQuizTimers(session)

	logger.WithSession(session.ID, session.UserID, session.ChatID).
		WithField("poll_id", pollID).
		Info("verification: опрос отправлен в личку")

	return nil
}

// HandleQuizAnswer обрабатывает нажатие варианта ответа в группе.
func (m *Machine) HandleQuizAnswer(ctx context.Context, ev *telegram.QuizAnswerEvent) error {
	m.answerCallback(ev.CallbackID)

	if ev.PresserID != ev.TargetUserID || ev.ChatID != m.cfg.AllowedChatID {
		return nil
	}

	unlock := m.store.Lock(ev.PresserID)
	defer unlock()

	session := m.store.Get(ev.PresserID)
	if session == nil || session.Phase != PhaseAwaitingAnswer || session.PollID != "" {
		logger.Log.WithField("user_id", ev.PresserID).Debug("verification: ответ вне фазы, игнорируем")
		return nil
	}

	session.UserName = ev.PresserName
	if ev.AnswerIndex == session.Challenge.CorrectIndex {
		return m.complete(ctx, session)
	}
	return m.fail(ctx, session, false)
}

// HandlePollAnswer обрабатывает ответ на опрос в личке.
func (m *Machine) HandlePollAnswer(ctx context.Context, ev *telegram.PollAnswerEvent) error {
	record, err := m.polls.Get(ctx, ev.PollID)
	if errors.Is(err, repository.ErrPollNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("verification: не удалось найти опрос: %w", err)
	}
	if record.UserID != ev.UserID {
		return nil
	}

	unlock := m.store.Lock(ev.UserID)
	defer unlock()

	session := m.store.Get(ev.UserID)
	if session == nil || session.Phase != PhaseAwaitingAnswer || session.PollID != ev.PollID {
		// Сессия уже разрешена, запись осталась от гонки — подчищаем.
		m.removePollRecord(ctx, ev.PollID)
		return nil
	}

	session.UserName = ev.UserName
	if ev.OptionIndex == session.Challenge.CorrectIndex {
		return m.complete(ctx, session)
	}
	return m.fail(ctx, session, false)
}

// HandlePollClosed — запасной обработчик таймаута: Telegram закрыл опрос
// по open_period раньше, чем сработал наш таймер.
func (m *Machine) HandlePollClosed(ctx context.Context, ev *telegram.PollClosedEvent) error {
	record, err := m.polls.Get(ctx, ev.PollID)
	if errors.Is(err, repository.ErrPollNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("verification: не удалось найти опрос: %w", err)
	}

	unlock := m.store.Lock(record.UserID)
	defer unlock()

	session := m.store.Get(record.UserID)
	if session == nil || session.Phase != PhaseAwaitingAnswer || session.PollID != ev.PollID {
		m.removePollRecord(ctx, ev.PollID)
		return nil
	}

	return m.fail(ctx, session, true)
}

// HandleGroupMessage подавляет сообщения непроверенных пользователей:
// пока сессия активна, отвечать нужно кнопками, а не в чат.
func (m *Machine) HandleGroupMessage(ctx context.Context, ev *telegram.GroupMessageEvent) error {
	if ev.ChatID != m.cfg.AllowedChatID || ev.IsBot {
		return nil
	}

	unlock := m.store.Lock(ev.UserID)
	defer unlock()

	session := m.store.Get(ev.UserID)
	if session == nil || session.resolved() {
		return nil
	}

	if err := m.gw.DeleteMessage(ev.ChatID, ev.MessageID); err != nil &&
		!errors.Is(err, telegram.ErrMessageNotFound) {
		// Не удалось удалить сейчас — удалим при завершении сессии.
		session.UserMessageIDs = append(session.UserMessageIDs, ev.MessageID)
	}

	return nil
}

// languageTimeout срабатывает, если язык не выбран вовремя.
func (m *Machine) languageTimeout(userID int64) {
	ctx := context.Background()

	unlock := m.store.Lock(userID)
	defer unlock()

	session := m.store.Get(userID)
	if session == nil || session.Phase != PhaseAwaitingLanguage {
		// Гонка с уже выполненным переходом: устаревший таймер молчит.
		logger.Log.WithField("user_id", userID).Debug("verification: устаревший языковой таймер")
		return
	}

	if err := m.fail(ctx, session, true); err != nil {
		logger.Log.WithField("user_id", userID).Errorf("verification: ошибка обработки языкового таймаута: %v", err)
	}
}

// quizTimeout срабатывает, если ответ не получен вовремя.
func (m *Machine) quizTimeout(userID int64) {
	ctx := context.Background()

	unlock := m.store.Lock(userID)
	defer unlock()

	session := m.store.Get(userID)
	if session == nil || session.Phase != PhaseAwaitingAnswer {
		logger.Log.WithField("user_id", userID).Debug("verification: устаревший таймер квиза")
		return
	}

	if err := m.fail(ctx, session, true); err != nil {
		logger.Log.WithField("user_id", userID).Errorf("verification: ошибка обработки таймаута квиза: %v", err)
	}
}

// lowTimeWarning отправляет напоминание на отметке двух третей времени.
func (m *Machine) lowTimeWarning(userID int64) {
	unlock := m.store.Lock(userID)
	defer unlock()

	session := m.store.Get(userID)
	if session == nil || session.Phase != PhaseAwaitingAnswer {
		return
	}

	text := m.dialogs.T("low_time", session.Language)
	messageID, err := m.gw.SendMessage(session.noticeChatID(), session.noticeThreadID(), text, nil)
	if err != nil {
		logger.Log.WithField("user_id", userID).Warnf("verification: не удалось отправить напоминание: %v", err)
		return
	}

	session.WarnMessageID = messageID
}

// armQuizTimers ставит таймер ответа и напоминание.
func (m *Machine) armQuizTimers(session *Session) {
	userID := session.UserID
	session.timer = m.sched.Schedule(m.cfg.QuizTimeout, func() {
		m.quizTimeout(userID)
	})

	if m.cfg.LowTimeWarningLead > 0 && m.cfg.LowTimeWarningLead < m.cfg.QuizTimeout {
		session.warnTimer = m.sched.Schedule(m.cfg.QuizTimeout-m.cfg.LowTimeWarningLead, func() {
			m.lowTimeWarning(userID)
		})
	}
}

// complete переводит сессию в Completed: учёт, уведомление, зачистка.
func (m *Machine) complete(ctx context.Context, session *Session) error {
	// Если пользователя не удалось записать как прошедшего, сессия не
	// завершается: таймер остаётся, таймаут отработает позже.
	if err := m.verified.MarkPassed(ctx, session.UserID); err != nil {
		return fmt.Errorf("verification: не удалось записать прохождение: %w", err)
	}

	session.cancelTimers()
	session.Phase = PhaseCompleted

	mention := quiz.Mention(session.UserID, session.UserName)
	text := "✅ " + quiz.Format(m.dialogs.T("correct", session.Language), mention)

	noticeID, err := m.gw.SendMessage(session.noticeChatID(), session.noticeThreadID(), text, nil)
	if err != nil {
		logger.Log.WithField("user_id", session.UserID).Warnf("verification: не удалось отправить поздравление: %v", err)
	}

	// На успехе зачистка быстрее, чем на провале; сообщение пользователя
	// о вступлении не трогаем.
	delay := m.cfg.DeleteDelaySuccess
	for _, id := range session.BotMessageIDs {
		m.deleteLater(session.ChatID, id, delay)
	}
	m.deleteLater(session.noticeChatID(), noticeID, delay)
	m.deleteLater(session.noticeChatID(), session.WarnMessageID, delay)
	if session.PMChatID != 0 {
		m.deleteLater(session.PMChatID, session.GreetingMessageID, delay)
		m.deleteLater(session.PMChatID, session.PollMessageID, delay)
	}

	m.removePollRecord(ctx, session.PollID)
	m.store.Delete(session.UserID)

	logger.WithSession(session.ID, session.UserID, session.ChatID).
		WithField("phase", session.Phase.String()).
		Info("verification: проверка пройдена")

	return nil
}

// fail переводит сессию в Failed: уведомление, зачистка, наказание.
func (m *Machine) fail(ctx context.Context, session *Session, timedOut bool) error {
	session.cancelTimers()
	session.Phase = PhaseFailed

	lang := session.Language
	if lang == "" {
		lang = "en"
	}

	mention := quiz.Mention(session.UserID, session.UserName)

	var text string
	var delay time.Duration
	switch {
	case timedOut && session.Language == "":
		text = quiz.Format(m.dialogs.T("language_timeout", lang), mention)
		delay = m.cfg.DeleteDelayTimeout
	case timedOut:
		text = "⏰ " + quiz.Format(m.dialogs.T("timeout", lang), mention)
		delay = m.cfg.DeleteDelayTimeout
	default:
		text = "❌ " + quiz.Format(m.dialogs.T("incorrect", lang), mention)
		delay = m.cfg.DeleteDelayFailure
	}
	text += " " + m.dialogs.T("blocked_message", lang)

	noticeID, err := m.gw.SendMessage(session.noticeChatID(), session.noticeThreadID(), text, nil)
	if err != nil {
		logger.Log.WithField("user_id", session.UserID).Warnf("verification: не удалось отправить уведомление о провале: %v", err)
	}

	// Следы сессии в группе убираются сразу.
	m.deleteNow(session.ChatID, session.OriginalMessageID)
	for _, id := range session.BotMessageIDs {
		m.deleteNow(session.ChatID, id)
	}
	for _, id := range session.UserMessageIDs {
		m.deleteNow(session.ChatID, id)
	}
	if session.PMChatID != 0 {
		m.deleteLater(session.PMChatID, session.GreetingMessageID, delay)
		m.deleteLater(session.PMChatID, session.PollMessageID, delay)
	}
	m.deleteLater(session.noticeChatID(), session.WarnMessageID, delay)
	m.deleteLater(session.noticeChatID(), noticeID, delay)

	if err := m.moderator.Punish(session.ChatID, session.UserID); err != nil {
		logger.Log.WithField("user_id", session.UserID).Errorf("verification: ошибка запуска наказания: %v", err)
	}

	m.removePollRecord(ctx, session.PollID)
	m.store.Delete(session.UserID)

	logger.WithSession(session.ID, session.UserID, session.ChatID).
		WithField("phase", session.Phase.String()).
		WithField("timed_out", timedOut).
		Info("verification: проверка провалена")

	return nil
}

// replyPrivate отправляет служебный ответ в личку, ошибки только логируются.
func (m *Machine) replyPrivate(chatID int64, text string) {
	if _, err := m.gw.SendMessage(chatID, 0, text, nil); err != nil {
		logger.Log.WithField("chat_id", chatID).Warnf("verification: не удалось ответить в личке: %v", err)
	}
}

// answerCallback подтверждает нажатие кнопки, неудача не критична.
func (m *Machine) answerCallback(callbackID string) {
	if err := m.gw.AnswerCallback(callbackID); err != nil {
		logger.Log.Debugf("verification: не удалось подтвердить callback: %v", err)
	}
}

// deleteNow удаляет сообщение сразу; "уже удалено" — штатный случай.
func (m *Machine) deleteNow(chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	if err := m.gw.DeleteMessage(chatID, messageID); err != nil &&
		!errors.Is(err, telegram.ErrMessageNotFound) {
		logger.Log.Warnf("verification: не удалось удалить сообщение %d в чате %d: %v", messageID, chatID, err)
	}
}

// deleteLater удаляет сообщение после задержки.
func (m *Machine) deleteLater(chatID int64, messageID int, delay time.Duration) {
	if messageID == 0 {
		return
	}
	m.sched.Schedule(delay, func() {
		m.deleteNow(chatID, messageID)
	})
}

// removePollRecord подчищает запись об опросе, если она была.
func (m *Machine) removePollRecord(ctx context.Context, pollID string) {
	if pollID == "" {
		return
	}
	if err := m.polls.Remove(ctx, pollID); err != nil {
		logger.Log.Warnf("verification: не удалось удалить запись об опросе %s: %v", pollID, err)
	}
}
