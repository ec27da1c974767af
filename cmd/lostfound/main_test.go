package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/campuslf/lostfound/internal/model"
)

func TestLevelRouter(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := slog.New(newLevelRouter(&out, &errOut)).With("component", "test")

	logger.Debug("hidden")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	if strings.Contains(out.String(), "hidden") || strings.Contains(errOut.String(), "hidden") {
		t.Error("debug records should be dropped")
	}
	if !strings.Contains(out.String(), "info message") || !strings.Contains(out.String(), "warn message") {
		t.Errorf("expected info and warn on stdout, got %q", out.String())
	}
	if strings.Contains(out.String(), "error message") {
		t.Error("error records should not go to stdout")
	}
	if !strings.Contains(errOut.String(), "error message") || !strings.Contains(errOut.String(), "component=test") {
		t.Errorf("expected error with attrs on stderr, got %q", errOut.String())
	}
}

func TestGeneratePassword(t *testing.T) {
	a, err := generatePassword(16)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := generatePassword(16)
	if len(a) != 16 {
		t.Errorf("expected 16 characters, got %d", len(a))
	}
	if a == b {
		t.Error("expected distinct passwords")
	}
	if err := model.ValidatePassword(a); err != nil {
		t.Errorf("generated password should be valid: %v", err)
	}
}
