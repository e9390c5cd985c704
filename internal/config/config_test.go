package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg QuestConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultQuestConfig()) {
		t.Errorf("embedded defaults drifted from DefaultQuestConfig()\nyaml: %+v\ncode: %+v", cfg, DefaultQuestConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultQuestConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*QuestConfig)
		want   string
	}{
		{"zero grid pitch", func(c *QuestConfig) { c.World.GridPitch = 0 }, "world.grid_pitch"},
		{"inverted bands", func(c *QuestConfig) { c.World.House.Threshold = 0.3 }, "thresholds"},
		{"negative speed", func(c *QuestConfig) { c.Player.BaseSpeed = -1 }, "player.base_speed"},
		{"empty interior", func(c *QuestConfig) { c.Interior.MinX = 600 }, "interior bounds"},
		{"stop beyond contact", func(c *QuestConfig) { c.Enemies.StopRadius = 50 }, "stop_radius"},
		{"no boss trigger", func(c *QuestConfig) { c.Enemies.Boss.KillTrigger = 0 }, "kill_trigger"},
		{"frozen swing", func(c *QuestConfig) { c.Melee.ProgressPerMillis = 0 }, "melee.progress_per_ms"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultQuestConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := DefaultQuestConfig()
	cfg.World.GridPitch = 0
	cfg.Ranged.Speed = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, want := range []string{"world.grid_pitch", "ranged.speed"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}

func TestParseQuestPartialOverride(t *testing.T) {
	cfg, err := ParseQuest([]byte("enemies:\n  spawn_interval_ms: 1000\n"))
	if err != nil {
		t.Fatalf("ParseQuest() failed: %v", err)
	}
	if cfg.Enemies.SpawnIntervalMillis != 1000 {
		t.Errorf("override not applied, got %v", cfg.Enemies.SpawnIntervalMillis)
	}
	if cfg.Enemies.Grunt.Health != 3 {
		t.Errorf("untouched keys should keep defaults, grunt health = %v", cfg.Enemies.Grunt.Health)
	}
}

func TestLoadQuestCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quest.yaml")
	if err := os.WriteFile(path, []byte("melee:\n  range: 150\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadQuest(path)
	if err != nil {
		t.Fatalf("LoadQuest() failed: %v", err)
	}
	if cfg.Melee.Range != 150 {
		t.Errorf("melee range = %v, expected 150", cfg.Melee.Range)
	}
}

func TestLoadQuestMissingCustomPath(t *testing.T) {
	_, err := LoadQuest(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadQuest() should fail for a missing custom path")
	}
}

func TestLoadQuestInvalidCustomFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("world:\n  grid_pitch: -5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadQuest(path); err == nil {
		t.Fatal("LoadQuest() should surface validation errors")
	}
}
