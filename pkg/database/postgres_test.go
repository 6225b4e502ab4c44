package database

import (
	"net/url"
	"testing"

	"moodflix/pkg/utils"
)

func TestConnString(t *testing.T) {
	got := ConnString(utils.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		Name:     "moodflix",
		User:     "app",
		Password: "p@ss word",
	})

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("ConnString produced an unparsable URL %q: %v", got, err)
	}
	if u.Scheme != "postgres" || u.Host != "db:5432" || u.Path != "/moodflix" {
		t.Errorf("unexpected URL %q", got)
	}
	if pw, _ := u.User.Password(); pw != "p@ss word" {
		t.Errorf("password = %q", pw)
	}
	if u.Query().Get("sslmode") != "disable" {
		t.Errorf("sslmode = %q", u.Query().Get("sslmode"))
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) == 0 || len(entries)%2 != 0 {
		t.Errorf("expected paired up/down migrations, got %d files", len(entries))
	}
}
