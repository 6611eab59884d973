package verification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ignatzorin/quizgate-bot/internal/config"
	"github.com/ignatzorin/quizgate-bot/internal/models"
	"github.com/ignatzorin/quizgate-bot/internal/quiz"
	"github.com/ignatzorin/quizgate-bot/internal/repository"
	"github.com/ignatzorin/quizgate-bot/internal/scheduler"
	"github.com/ignatzorin/quizgate-bot/internal/telegram"
)

const (
	testChatID = int64(-100500)
	testUserID = int64(42)
	testPMChat = int64(42)
)

type sentMessage struct {
	chatID   int64
	threadID int
	text     string
	buttons  [][]telegram.Button
}

type fakeGateway struct {
	mu        sync.Mutex
	sent      []sentMessage
	edited    []int
	deleted   []int
	callbacks []string
	polls     int

	nextMessageID int
	sendErr       error
	pollErr       error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{nextMessageID: 100}
}

func (g *fakeGateway) SendMessage(chatID int64, threadID int, text string, buttons [][]telegram.Button) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sendErr != nil {
		return 0, g.sendErr
	}
	g.nextMessageID++
	g.sent = append(g.sent, sentMessage{chatID: chatID, threadID: threadID, text: text, buttons: buttons})
	return g.nextMessageID, nil
}

func (g *fakeGateway) EditMessage(chatID int64, messageID int, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edited = append(g.edited, messageID)
	return nil
}

func (g *fakeGateway) DeleteMessage(chatID int64, messageID int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleted = append(g.deleted, messageID)
	return nil
}

func (g *fakeGateway) SendQuizPoll(chatID int64, question string, options []string, correctIndex int, openPeriod time.Duration) (string, int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pollErr != nil {
		return "", 0, g.pollErr
	}
	g.polls++
	g.nextMessageID++
	return fmt.Sprintf("poll-%d", g.polls), g.nextMessageID, nil
}

func (g *fakeGateway) AnswerCallback(callbackID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.callbacks = append(g.callbacks, callbackID)
	return nil
}

func (g *fakeGateway) Username() string { return "quizgatebot" }

func (g *fakeGateway) sentCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sent)
}

func (g *fakeGateway) lastSent() sentMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sent[len(g.sent)-1]
}

type fakeVerified struct {
	mu      sync.Mutex
	passed  map[int64]bool
	markErr error
}

func newFakeVerified() *fakeVerified {
	return &fakeVerified{passed: make(map[int64]bool)}
}

func (v *fakeVerified) IsPassed(ctx context.Context, userID int64) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.passed[userID], nil
}

func (v *fakeVerified) MarkPassed(ctx context.Context, userID int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.markErr != nil {
		return v.markErr
	}
	v.passed[userID] = true
	return nil
}

type fakeBans struct {
	banned map[int64]bool
}

func (b *fakeBans) IsBanned(ctx context.Context, userID int64) (bool, error) {
	return b.banned[userID], nil
}

type fakePolls struct {
	mu      sync.Mutex
	records map[string]*models.ActivePoll
	addErr  error
}

func newFakePolls() *fakePolls {
	return &fakePolls{records: make(map[string]*models.ActivePoll)}
}

func (p *fakePolls) Add(ctx context.Context, poll *models.ActivePoll) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.addErr != nil {
		return p.addErr
	}
	p.records[poll.PollID] = poll
	return nil
}

func (p *fakePolls) Get(ctx context.Context, pollID string) (*models.ActivePoll, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if record, ok := p.records[pollID]; ok {
		return record, nil
	}
	return nil, repository.ErrPollNotFound
}

func (p *fakePolls) Remove(ctx context.Context, pollID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.records, pollID)
	return nil
}

type fakeModerator struct {
	mu       sync.Mutex
	punished []int64
}

func (m *fakeModerator) Punish(chatID, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.punished = append(m.punished, userID)
	return nil
}

func (m *fakeModerator) punishedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.punished)
}

type fakeTask struct {
	delay     time.Duration
	fn        func()
	cancelled bool
}

func (t *fakeTask) Cancel() bool {
	if t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// fakeScheduler копит задачи; тест запускает их вручную.
type fakeScheduler struct {
	mu    sync.Mutex
	tasks []*fakeTask
}

func (s *fakeScheduler) Schedule(delay time.Duration, fn func()) scheduler.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &fakeTask{delay: delay, fn: fn}
	s.tasks = append(s.tasks, task)
	return task
}

// fire запускает все неотменённые задачи с указанной задержкой.
func (s *fakeScheduler) fire(delay time.Duration) int {
	s.mu.Lock()
	var due []*fakeTask
	for _, task := range s.tasks {
		if task.delay == delay && !task.cancelled {
			task.cancelled = true
			due = append(due, task)
		}
	}
	s.mu.Unlock()

	for _, task := range due {
		task.fn()
	}
	return len(due)
}

func testDialogs() quiz.Dialogs {
	strings := map[string]map[string]string{}
	for _, key := range []string{
		"language_set", "greeting", "quiz_instruction", "quiz_button",
		"correct", "incorrect", "timeout", "language_timeout", "low_time",
		"blocked_message", "start_welcome", "start_invalid", "start_not_yours",
	} {
		strings[key] = map[string]string{
			"ru": key + "_ru {name}",
			"en": key + "_en {name}",
			"zh": key + "_zh {name}",
		}
	}
	return quiz.Dialogs{
		LanguageSelection: "choose {name}",
		Strings:           strings,
	}
}

func testPool() *quiz.Pool {
	content := &quiz.Content{
		Questions: []quiz.Question{{
			Text: map[string]string{"ru": "вопрос", "en": "question", "zh": "问题"},
			Answers: map[string][]string{
				"ru": {"один", "два", "три"},
				"en": {"one", "two", "three"},
				"zh": {"一", "二", "三"},
			},
			CorrectIndex: 1,
		}},
	}
	return quiz.NewPool(content)
}

type machineEnv struct {
	machine   *Machine
	gw        *fakeGateway
	verified  *fakeVerified
	bans      *fakeBans
	polls     *fakePolls
	moderator *fakeModerator
	sched     *fakeScheduler
}

func newMachineEnv(delivery string) *machineEnv {
	env := &machineEnv{
		gw:        newFakeGateway(),
		verified:  newFakeVerified(),
		bans:      &fakeBans{banned: make(map[int64]bool)},
		polls:     newFakePolls(),
		moderator: &fakeModerator{},
		sched:     &fakeScheduler{},
	}
	env.machine = NewMachine(
		Config{
			AllowedChatID:      testChatID,
			Delivery:           delivery,
			LanguageTimeout:    time.Minute,
			QuizTimeout:        30 * time.Second,
			LowTimeWarningLead: 10 * time.Second,
			DeleteDelaySuccess: 15 * time.Second,
			DeleteDelayFailure: 25 * time.Second,
			DeleteDelayTimeout: 35 * time.Second,
		},
		env.gw, env.verified, env.bans, env.polls, env.moderator, env.sched,
		testPool(), testDialogs(),
	)
	return env
}

func (env *machineEnv) join(t *testing.T) {
	t.Helper()
	err := env.machine.HandleJoin(context.Background(), &telegram.JoinEvent{
		ChatID:   testChatID,
		UserID:   testUserID,
		UserName: "Тест",
	})
	if err != nil {
		t.Fatalf("unexpected join error: %v", err)
	}
}

func (env *machineEnv) chooseLanguage(t *testing.T, lang string) {
	t.Helper()
	err := env.machine.HandleLanguageChoice(context.Background(), &telegram.LanguageChoiceEvent{
		CallbackID:   "cb-lang",
		ChatID:       testChatID,
		MessageID:    101,
		PresserID:    testUserID,
		PresserName:  "Тест",
		TargetUserID: testUserID,
		Language:     lang,
	})
	if err != nil {
		t.Fatalf("unexpected language choice error: %v", err)
	}
}

func (env *machineEnv) session() *Session {
	return env.machine.store.Get(testUserID)
}

func TestHandleJoin_CreatesSessionWithLanguagePrompt(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.join(t)

	if env.gw.sentCount() != 1 {
		t.Fatalf("expected 1 message, got %d", env.gw.sentCount())
	}

	prompt := env.gw.lastSent()
	if len(prompt.buttons) != 1 || len(prompt.buttons[0]) != len(quiz.Languages) {
		t.Fatalf("expected one row with %d language buttons", len(quiz.Languages))
	}

	session := env.session()
	if session == nil {
		t.Fatal("expected session to exist")
	}
	if session.Phase != PhaseAwaitingLanguage {
		t.Errorf("expected phase awaiting_language, got %s", session.Phase)
	}
	if env.machine.ActiveSessions() != 1 {
		t.Errorf("expected 1 active session, got %d", env.machine.ActiveSessions())
	}
}

func TestHandleJoin_IgnoresOtherChatsAndBots(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)

	if err := env.machine.HandleJoin(context.Background(), &telegram.JoinEvent{
		ChatID: testChatID + 1,
		UserID: testUserID,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := env.machine.HandleJoin(context.Background(), &telegram.JoinEvent{
		ChatID: testChatID,
		UserID: testUserID,
		IsBot:  true,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if env.gw.sentCount() != 0 {
		t.Errorf("expected no messages, got %d", env.gw.sentCount())
	}
}

func TestHandleJoin_SkipsPassedAndBannedUsers(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.verified.passed[testUserID] = true
	env.join(t)

	env.verified.passed[testUserID] = false
	env.bans.banned[testUserID] = true
	env.join(t)

	if env.gw.sentCount() != 0 {
		t.Errorf("expected no messages for passed/banned user, got %d", env.gw.sentCount())
	}
}

func TestHandleJoin_DuplicateJoinIsNoop(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.join(t)
	env.join(t)

	if env.gw.sentCount() != 1 {
		t.Errorf("expected single prompt for duplicate join, got %d", env.gw.sentCount())
	}
}

func TestHandleJoin_SendFailureLeavesNoSession(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.gw.sendErr = errors.New("network down")

	err := env.machine.HandleJoin(context.Background(), &telegram.JoinEvent{
		ChatID: testChatID,
		UserID: testUserID,
	})
	if err == nil {
		t.Fatal("expected error when prompt send fails")
	}
	if env.session() != nil {
		t.Error("expected no session after failed prompt")
	}
}

func TestLanguageChoice_GroupDeliveryStartsQuiz(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.join(t)
	env.chooseLanguage(t, "ru")

	session := env.session()
	if session == nil {
		t.Fatal("expected session to exist")
	}
	if session.Phase != PhaseAwaitingAnswer {
		t.Errorf("expected phase awaiting_answer, got %s", session.Phase)
	}
	if session.Language != "ru" {
		t.Errorf("expected language ru, got %s", session.Language)
	}
	if session.Challenge == nil {
		t.Fatal("expected challenge to be picked")
	}

	quizMsg := env.gw.lastSent()
	if len(quizMsg.buttons) != len(session.Challenge.Options) {
		t.Errorf("expected %d option rows, got %d", len(session.Challenge.Options), len(quizMsg.buttons))
	}
	if len(env.gw.edited) != 1 {
		t.Errorf("expected prompt to be edited once, got %d", len(env.gw.edited))
	}
}

func TestLanguageChoice_ForeignPressIsIgnored(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.join(t)

	err := env.machine.HandleLanguageChoice(context.Background(), &telegram.LanguageChoiceEvent{
		CallbackID:   "cb-foreign",
		ChatID:       testChatID,
		PresserID:    testUserID + 1,
		TargetUserID: testUserID,
		Language:     "en",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if env.session().Phase != PhaseAwaitingLanguage {
		t.Error("foreign press must not advance the session")
	}
}

func TestQuizAnswer_CorrectCompletesSession(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.join(t)
	env.chooseLanguage(t, "en")

	correct := env.session().Challenge.CorrectIndex
	err := env.machine.HandleQuizAnswer(context.Background(), &telegram.QuizAnswerEvent{
		CallbackID:   "cb-answer",
		ChatID:       testChatID,
		PresserID:    testUserID,
		TargetUserID: testUserID,
		AnswerIndex:  correct,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !env.verified.passed[testUserID] {
		t.Error("expected user to be marked as passed")
	}
	if env.session() != nil {
		t.Error("expected session to be removed after completion")
	}
	if env.moderator.punishedCount() != 0 {
		t.Error("correct answer must not punish")
	}
}

func TestQuizAnswer_WrongFailsAndPunishes(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.join(t)
	env.chooseLanguage(t, "en")

	wrong := (env.session().Challenge.CorrectIndex + 1) % 3
	err := env.machine.HandleQuizAnswer(context.Background(), &telegram.QuizAnswerEvent{
		CallbackID:   "cb-answer",
		ChatID:       testChatID,
		PresserID:    testUserID,
		TargetUserID: testUserID,
		AnswerIndex:  wrong,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if env.moderator.punishedCount() != 1 {
		t.Errorf("expected 1 punish call, got %d", env.moderator.punishedCount())
	}
	if env.verified.passed[testUserID] {
		t.Error("failed user must not be marked as passed")
	}
	if env.session() != nil {
		t.Error("expected session to be removed after failure")
	}
}

func TestQuizAnswer_MarkPassedFailureKeepsSession(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.join(t)
	env.chooseLanguage(t, "en")
	env.verified.markErr = errors.New("db down")

	correct := env.session().Challenge.CorrectIndex
	err := env.machine.HandleQuizAnswer(context.Background(), &telegram.QuizAnswerEvent{
		CallbackID:   "cb-answer",
		ChatID:       testChatID,
		PresserID:    testUserID,
		TargetUserID: testUserID,
		AnswerIndex:  correct,
	})
	if err == nil {
		t.Fatal("expected error when MarkPassed fails")
	}

	session := env.session()
	if session == nil {
		t.Fatal("session must survive MarkPassed failure")
	}
	if session.Phase != PhaseAwaitingAnswer {
		t.Errorf("expected phase awaiting_answer, got %s", session.Phase)
	}

	// Хранилище ожило: повторный ответ завершает сессию.
	env.verified.markErr = nil
	if err := env.machine.HandleQuizAnswer(context.Background(), &telegram.QuizAnswerEvent{
		ChatID:       testChatID,
		PresserID:    testUserID,
		TargetUserID: testUserID,
		AnswerIndex:  correct,
	}); err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if !env.verified.passed[testUserID] {
		t.Error("expected user to be marked as passed on retry")
	}
}

func TestLanguageTimeout_FailsSession(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.join(t)

	fired := env.sched.fire(time.Minute)
	if fired != 1 {
		t.Fatalf("expected 1 language timer, fired %d", fired)
	}

	if env.moderator.punishedCount() != 1 {
		t.Errorf("expected punish on language timeout, got %d", env.moderator.punishedCount())
	}
	if env.session() != nil {
		t.Error("expected session to be removed after timeout")
	}
}

func TestLanguageTimeout_StaleTimerIsNoop(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.join(t)
	env.chooseLanguage(t, "ru")

	// Языковой таймер отменён переходом: запуск ничего не делает.
	if fired := env.sched.fire(time.Minute); fired != 0 {
		t.Errorf("expected cancelled language timer, fired %d", fired)
	}
	if env.session() == nil || env.session().Phase != PhaseAwaitingAnswer {
		t.Error("stale timer must not touch the session")
	}
}

func TestQuizTimeout_FailsSession(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.join(t)
	env.chooseLanguage(t, "ru")

	if fired := env.sched.fire(30 * time.Second); fired != 1 {
		t.Fatalf("expected 1 quiz timer, fired %d", fired)
	}

	if env.moderator.punishedCount() != 1 {
		t.Errorf("expected punish on quiz timeout, got %d", env.moderator.punishedCount())
	}
	if env.session() != nil {
		t.Error("expected session to be removed after quiz timeout")
	}
}

func TestLowTimeWarning_SentDuringQuiz(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.join(t)
	env.chooseLanguage(t, "ru")

	before := env.gw.sentCount()
	if fired := env.sched.fire(20 * time.Second); fired != 1 {
		t.Fatalf("expected 1 warning timer, fired %d", fired)
	}
	if env.gw.sentCount() != before+1 {
		t.Error("expected low time warning to be sent")
	}
	if env.session().WarnMessageID == 0 {
		t.Error("expected warning message id to be recorded")
	}
}

func TestGroupMessage_DeletedWhileUnverified(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)
	env.join(t)

	err := env.machine.HandleGroupMessage(context.Background(), &telegram.GroupMessageEvent{
		ChatID:    testChatID,
		UserID:    testUserID,
		MessageID: 777,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(env.gw.deleted) != 1 || env.gw.deleted[0] != 777 {
		t.Errorf("expected message 777 to be deleted, got %v", env.gw.deleted)
	}
}

func TestGroupMessage_VerifiedUserUntouched(t *testing.T) {
	env := newMachineEnv(config.DeliveryGroup)

	err := env.machine.HandleGroupMessage(context.Background(), &telegram.GroupMessageEvent{
		ChatID:    testChatID,
		UserID:    testUserID,
		MessageID: 778,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(env.gw.deleted) != 0 {
		t.Errorf("expected no deletions without a session, got %v", env.gw.deleted)
	}
}

func TestPrivateDelivery_FullFlow(t *testing.T) {
	env := newMachineEnv(config.DeliveryPrivate)
	env.join(t)
	env.chooseLanguage(t, "en")

	session := env.session()
	if session.Phase != PhaseAwaitingAnswer {
		t.Fatalf("expected phase awaiting_answer, got %s", session.Phase)
	}

	link := env.gw.lastSent()
	if len(link.buttons) != 1 || link.buttons[0][0].URL == "" {
		t.Fatal("expected deep-link button in the group message")
	}

	err := env.machine.HandleStartCommand(context.Background(), &telegram.StartCommandEvent{
		ChatID:   testPMChat,
		UserID:   testUserID,
		UserName: "Тест",
		Payload:  fmt.Sprintf("quiz_%d_en_%d", testUserID, testChatID),
	})
	if err != nil {
		t.Fatalf("unexpected /start error: %v", err)
	}

	session = env.session()
	if session.PollID == "" {
		t.Fatal("expected poll to be sent")
	}
	if _, err := env.polls.Get(context.Background(), session.PollID); err != nil {
		t.Fatalf("expected poll record to exist: %v", err)
	}

	err = env.machine.HandlePollAnswer(context.Background(), &telegram.PollAnswerEvent{
		PollID:      session.PollID,
		UserID:      testUserID,
		OptionIndex: session.Challenge.CorrectIndex,
	})
	if err != nil {
		t.Fatalf("unexpected poll answer error: %v", err)
	}

	if !env.verified.passed[testUserID] {
		t.Error("expected user to be marked as passed")
	}
	if len(env.polls.records) != 0 {
		t.Error("expected poll record to be cleaned up")
	}
	if env.session() != nil {
		t.Error("expected session to be removed after completion")
	}
}

func TestStartCommand_RejectsForeignAndInvalidPayloads(t *testing.T) {
	env := newMachineEnv(config.DeliveryPrivate)
	env.join(t)
	env.chooseLanguage(t, "en")

	cases := []struct {
		name    string
		userID  int64
		payload string
	}{
		{"invalid payload", testUserID, "garbage"},
		{"foreign link", testUserID + 1, fmt.Sprintf("quiz_%d_en_%d", testUserID, testChatID)},
		{"wrong chat", testUserID, fmt.Sprintf("quiz_%d_en_%d", testUserID, testChatID+1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := env.machine.HandleStartCommand(context.Background(), &telegram.StartCommandEvent{
				ChatID:  tc.userID,
				UserID:  tc.userID,
				Payload: tc.payload,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if env.session().PollID != "" {
				t.Error("rejected /start must not send a poll")
			}
		})
	}
}

func TestStartCommand_SecondStartIsNoop(t *testing.T) {
	env := newMachineEnv(config.DeliveryPrivate)
	env.join(t)
	env.chooseLanguage(t, "en")

	start := &telegram.StartCommandEvent{
		ChatID:  testPMChat,
		UserID:  testUserID,
		Payload: fmt.Sprintf("quiz_%d_en_%d", testUserID, testChatID),
	}
	if err := env.machine.HandleStartCommand(context.Background(), start); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstPoll := env.session().PollID

	if err := env.machine.HandleStartCommand(context.Background(), start); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.session().PollID != firstPoll {
		t.Error("second /start must not replace the poll")
	}
	if env.gw.polls != 1 {
		t.Errorf("expected 1 poll, got %d", env.gw.polls)
	}
}

func TestPollAnswer_StaleRecordIsCleanedUp(t *testing.T) {
	env := newMachineEnv(config.DeliveryPrivate)
	record := &models.ActivePoll{PollID: "poll-stale", UserID: testUserID, ChatID: testPMChat}
	if err := env.polls.Add(context.Background(), record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := env.machine.HandlePollAnswer(context.Background(), &telegram.PollAnswerEvent{
		PollID:      "poll-stale",
		UserID:      testUserID,
		OptionIndex: 0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(env.polls.records) != 0 {
		t.Error("expected stale poll record to be removed")
	}
}

func TestPollClosed_FailsSessionAsTimeout(t *testing.T) {
	env := newMachineEnv(config.DeliveryPrivate)
	env.join(t)
	env.chooseLanguage(t, "en")

	if err := env.machine.HandleStartCommand(context.Background(), &telegram.StartCommandEvent{
		ChatID:  testPMChat,
		UserID:  testUserID,
		Payload: fmt.Sprintf("quiz_%d_en_%d", testUserID, testChatID),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pollID := env.session().PollID

	if err := env.machine.HandlePollClosed(context.Background(), &telegram.PollClosedEvent{PollID: pollID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if env.moderator.punishedCount() != 1 {
		t.Errorf("expected punish on poll close, got %d", env.moderator.punishedCount())
	}
	if env.session() != nil {
		t.Error("expected session to be removed")
	}
}
