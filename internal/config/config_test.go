package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ALLOWED_CHAT_ID", "-100500")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AllowedChatID != -100500 {
		t.Errorf("expected chat id -100500, got %d", cfg.AllowedChatID)
	}
	if cfg.QuizDelivery != DeliveryPrivate {
		t.Errorf("expected private delivery by default, got %s", cfg.QuizDelivery)
	}
	if cfg.LanguageTimeout != 5*time.Minute {
		t.Errorf("expected 5m language timeout, got %v", cfg.LanguageTimeout)
	}
	if cfg.QuizAnswerTimeout != 30*time.Second {
		t.Errorf("expected 30s quiz timeout, got %v", cfg.QuizAnswerTimeout)
	}
	if cfg.MuteDuration != 24*time.Hour {
		t.Errorf("expected 24h mute, got %v", cfg.MuteDuration)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.HTTPPort)
	}
}

func TestLoad_RequiresBotToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("ALLOWED_CHAT_ID", "-100500")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without BOT_TOKEN")
	}
}

func TestLoad_RequiresAllowedChatID(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ALLOWED_CHAT_ID", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without ALLOWED_CHAT_ID")
	}
}

func TestLoad_RejectsNonNumericChatID(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ALLOWED_CHAT_ID", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric ALLOWED_CHAT_ID")
	}
}

func TestLoad_RejectsUnknownDelivery(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("QUIZ_DELIVERY", "carrier-pigeon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown delivery mode")
	}
}

func TestLoad_GroupDelivery(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("QUIZ_DELIVERY", "group")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.QuizDelivery != DeliveryGroup {
		t.Errorf("expected group delivery, got %s", cfg.QuizDelivery)
	}
}
