package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("STREAK_MILESTONES", "")
	t.Setenv("PORT", "9090")

	cfg := Load()
	if cfg.StorageDriver != "postgres" {
		t.Fatalf("storage driver = %q", cfg.StorageDriver)
	}
	if cfg.BaseURL != "http://localhost:9090" {
		t.Fatalf("base url = %q", cfg.BaseURL)
	}
	if cfg.DailyCompletionPoints != 5 {
		t.Fatalf("daily points = %d", cfg.DailyCompletionPoints)
	}
	want := map[int]int{7: 30, 14: 50, 30: 100}
	if len(cfg.StreakMilestones) != len(want) {
		t.Fatalf("milestones = %v", cfg.StreakMilestones)
	}
	for days, bonus := range want {
		if cfg.StreakMilestones[days] != bonus {
			t.Fatalf("milestone %d = %d, want %d", days, cfg.StreakMilestones[days], bonus)
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestMalformedMilestonesFailValidation(t *testing.T) {
	for _, raw := range []string{"7-30", "7:thirty", "7:30,x:50"} {
		t.Setenv("STREAK_MILESTONES", raw)

		cfg := Load()
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%q: expected validation error", raw)
		}
		if !strings.Contains(err.Error(), "STREAK_MILESTONES") {
			t.Fatalf("%q: error does not name the variable: %v", raw, err)
		}
	}
}

func TestCustomMilestones(t *testing.T) {
	t.Setenv("STREAK_MILESTONES", "3:10, 21:75")

	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(cfg.StreakMilestones) != 2 || cfg.StreakMilestones[21] != 75 {
		t.Fatalf("milestones = %v", cfg.StreakMilestones)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"prod default secret", func(c *Config) { c.Environment = "production" }},
		{"unknown driver", func(c *Config) { c.StorageDriver = "mongo" }},
		{"memory in prod", func(c *Config) {
			c.Environment = "production"
			c.JWTSecret = "s3cret"
			c.StorageDriver = "memory"
		}},
		{"zero daily points", func(c *Config) { c.DailyCompletionPoints = 0 }},
		{"sendgrid without key", func(c *Config) { c.EmailProvider = "sendgrid" }},
		{"twilio without creds", func(c *Config) { c.SMSProvider = "twilio" }},
		{"fcm without creds", func(c *Config) { c.PushProvider = "fcm" }},
		{"reminder hour", func(c *Config) { c.ReminderHourUTC = 24 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
