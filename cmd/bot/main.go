package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignatzorin/quizgate-bot/internal/bot"
	"github.com/ignatzorin/quizgate-bot/internal/config"
	"github.com/ignatzorin/quizgate-bot/internal/db"
	"github.com/ignatzorin/quizgate-bot/internal/goroutine"
	"github.com/ignatzorin/quizgate-bot/internal/http/handlers"
	"github.com/ignatzorin/quizgate-bot/internal/http/router"
	"github.com/ignatzorin/quizgate-bot/internal/logger"
	"github.com/ignatzorin/quizgate-bot/internal/moderation"
	"github.com/ignatzorin/quizgate-bot/internal/quiz"
	"github.com/ignatzorin/quizgate-bot/internal/repository"
	"github.com/ignatzorin/quizgate-bot/internal/scheduler"
	"github.com/ignatzorin/quizgate-bot/internal/telegram"
	"github.com/ignatzorin/quizgate-bot/internal/verification"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("info")
		logger.Log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
	}
	logger.Init(logLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}
	goroutine.SetLogger(logger.Log)

	logger.Log.WithField("env", cfg.Env).Info("main: запуск бота проверки новых участников")

	conn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatalf("main: ошибка подключения к базе данных: %v", err)
	}
	defer safeClose(conn, "database")

	if err := db.RunMigrations(ctx, conn, cfg.MigrationsPath); err != nil {
		logger.Log.Fatalf("main: ошибка применения миграций: %v", err)
	}

	verifiedRepo := repository.NewVerifiedRepository(conn)
	banRepo := repository.NewBanRepository(conn)
	pollRepo := repository.NewPollRepository(conn)

	content, err := quiz.LoadContent(cfg.ContentPath)
	if err != nil {
		logger.Log.Fatalf("main: ошибка загрузки контента квиза: %v", err)
	}
	pool := quiz.NewPool(content)

	gateway, err := telegram.NewGateway(cfg.BotToken, cfg.FallbackThreadID)
	if err != nil {
		logger.Log.Fatalf("main: ошибка подключения к Telegram: %v", err)
	}
	logger.Log.WithField("bot", gateway.Username()).Info("main: авторизация в Telegram успешна")

	sched := scheduler.New()

	pipeline := moderation.New(gateway, banRepo, sched, moderation.Config{
		MuteDuration:      cfg.MuteDuration,
		UnbanDelay:        cfg.UnbanDelay,
		RecordDeleteDelay: cfg.RecordDeleteDelay,
		SweepInterval:     cfg.BanSweepInterval,
	})
	goroutine.SafeGo(func() {
		pipeline.RunSweeper(ctx)
	})

	machine := verification.NewMachine(
		verification.Config{
			AllowedChatID:      cfg.AllowedChatID,
			FallbackThreadID:   cfg.FallbackThreadID,
			Delivery:           cfg.QuizDelivery,
			LanguageTimeout:    cfg.LanguageTimeout,
			QuizTimeout:        cfg.QuizAnswerTimeout,
			LowTimeWarningLead: cfg.LowTimeWarningLead,
			DeleteDelaySuccess: cfg.DeleteDelaySuccess,
			DeleteDelayFailure: cfg.DeleteDelayFailure,
			DeleteDelayTimeout: cfg.DeleteDelayTimeout,
		},
		gateway,
		verifiedRepo,
		banRepo,
		pollRepo,
		pipeline,
		sched,
		pool,
		content.Dialogs,
	)

	healthHandler := handlers.NewHealthHandler(conn)
	statusHandler := handlers.NewStatusHandler(machine, banRepo, verifiedRepo)
	engine := router.SetupRouter(cfg, healthHandler, statusHandler)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	goroutine.SafeGo(func() {
		logger.Log.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("main: ошибка HTTP сервера: %v", err)
		}
	})

	dispatcher := bot.New(gateway, machine)
	dispatcher.Run(ctx)

	// Контекст отменён: гасим HTTP сервер с небольшим запасом времени.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("main: ошибка остановки HTTP сервера: %v", err)
	}

	logger.Log.Info("main: бот остановлен")
}

// safeClose закрывает ресурс и логирует ошибку, если она возникла.
func safeClose(closer io.Closer, name string) {
	if err := closer.Close(); err != nil {
		logger.Log.Errorf("main: ошибка закрытия %s: %v", name, err)
	}
}
