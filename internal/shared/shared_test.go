package shared

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID()

	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected a parseable UUID, got %s: %v", id, err)
	}

	if GenerateID() == id {
		t.Error("expected unique IDs")
	}
}

func TestEnv(t *testing.T) {
	t.Run("Returns Set Value", func(t *testing.T) {
		t.Setenv("TUNELENS_TEST_VAR", "value")
		if got := Env("TUNELENS_TEST_VAR", "fallback"); got != "value" {
			t.Errorf("expected value, got %s", got)
		}
	})

	t.Run("Trims Whitespace", func(t *testing.T) {
		t.Setenv("TUNELENS_TEST_VAR", "  padded  ")
		if got := Env("TUNELENS_TEST_VAR", "fallback"); got != "padded" {
			t.Errorf("expected padded, got %s", got)
		}
	})

	t.Run("Blank Falls Back", func(t *testing.T) {
		t.Setenv("TUNELENS_TEST_VAR", "   ")
		if got := Env("TUNELENS_TEST_VAR", "fallback"); got != "fallback" {
			t.Errorf("expected fallback, got %s", got)
		}
	})
}

func TestLoggers(t *testing.T) {
	t.Run("WithLogger Returns A Child", func(t *testing.T) {
		parent := NewLogger(io.Discard)

		child := WithLogger(parent, "component", "web")
		if child == nil {
			t.Fatal("expected a child logger")
		}
		if child == parent {
			t.Error("expected a distinct logger instance")
		}
	})

	t.Run("SetLogLevel Applies", func(t *testing.T) {
		logger := NewLogger(io.Discard)

		SetLogLevel(logger, log.DebugLevel)
		if logger.GetLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", logger.GetLevel())
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if logger == nil {
		t.Fatal("expected a logger")
	}

	logger.Info("test entry")
}
