package logger

import "testing"

func TestRedactsSensitiveKeys(t *testing.T) {
	log, logs := NewObserved()

	log.Info("user signed in", "email", "jane@example.com", "access_token", "abc", "user_id", int64(7), "phone", "+15551234567")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["email"] != "j***@example.com" {
		t.Fatalf("email not masked: %v", fields["email"])
	}
	if fields["access_token"] != "[REDACTED]" {
		t.Fatalf("token not redacted: %v", fields["access_token"])
	}
	if fields["user_id"] != int64(7) {
		t.Fatalf("user_id changed: %v", fields["user_id"])
	}
	if fields["phone"] != "********4567" {
		t.Fatalf("phone not masked: %v", fields["phone"])
	}
}

func TestDeviceTokenIsHashedNotRedacted(t *testing.T) {
	log, logs := NewObserved()
	log.WithHashSalt("pepper").Debug("push sent", "device_token", "fcm-token-123")

	got, _ := logs.All()[0].ContextMap()["device_token"].(string)
	if len(got) != len("hash:")+12 || got[:5] != "hash:" {
		t.Fatalf("unexpected hashed value %q", got)
	}
}

func TestWithKeepsFields(t *testing.T) {
	log, logs := NewObserved()
	log.With("component", "points").Warn("slow write", "took_ms", 250)

	fields := logs.All()[0].ContextMap()
	if fields["component"] != "points" {
		t.Fatalf("component missing: %v", fields)
	}
}

func TestEmailKeysMaskOnlyAddresses(t *testing.T) {
	log, logs := NewObserved()
	log.Info("providers ready", "email_provider", "sendgrid", "email", "@nolocal.io", "mailer", "smtp")

	fields := logs.All()[0].ContextMap()
	if fields["email_provider"] != "sendgrid" {
		t.Fatalf("provider name hidden: %v", fields["email_provider"])
	}
	if fields["email"] != "***@nolocal.io" {
		t.Fatalf("address not masked: %v", fields["email"])
	}
	if fields["mailer"] != "smtp" {
		t.Fatalf("mailer changed: %v", fields["mailer"])
	}
}
