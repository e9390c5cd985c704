package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-quest/internal/config"
)

func TestConfigCommandPrintsDefaults(t *testing.T) {
	var buf bytes.Buffer
	configCmd.SetOut(&buf)
	flagResolved = false

	if err := runConfig(configCmd, nil); err != nil {
		t.Fatalf("runConfig() error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), config.DefaultYAML()) {
		t.Error("output differs from the embedded defaults")
	}
}

func TestConfigCommandResolved(t *testing.T) {
	var buf bytes.Buffer
	configCmd.SetOut(&buf)
	flagResolved = true
	t.Cleanup(func() { flagResolved = false })

	if err := runConfig(configCmd, nil); err != nil {
		t.Fatalf("runConfig() error: %v", err)
	}
	if parsed, err := config.ParseQuest(buf.Bytes()); err != nil {
		t.Errorf("resolved output does not parse: %v", err)
	} else if parsed.World.GridPitch <= 0 {
		t.Error("resolved output lost the grid pitch")
	}
}

func TestWorldCommandCentersOnOrigin(t *testing.T) {
	var buf bytes.Buffer
	worldCmd.SetOut(&buf)
	flagWorldX, flagWorldY, flagWorldRadius = 0, 0, 2

	if err := runWorld(worldCmd, nil); err != nil {
		t.Fatalf("runWorld() error: %v", err)
	}
	out := buf.String()
	// The origin cell always holds a house
	if !strings.Contains(out, "[H]") {
		t.Errorf("expected bracketed house at the origin:\n%s", out)
	}
	if !strings.Contains(out, "Radius: 2") {
		t.Errorf("header missing radius:\n%s", out)
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	flagLogLevel = "loud"
	t.Cleanup(func() { flagLogLevel = "info" })

	if _, _, err := newLogger(); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestNewLoggerDiscardsByDefault(t *testing.T) {
	flagLogPath = ""
	logger, closer, err := newLogger()
	if err != nil {
		t.Fatalf("newLogger() error: %v", err)
	}
	defer closer.Close()
	logger.Info("nowhere")
}
