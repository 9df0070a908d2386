package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseWithComments(t *testing.T) {
	data := []byte(`{
		// where mutations land
		"mode": "remote",
		"server_url": "http://deck.example:8080", // trailing comma next
	}`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Mode != ModeRemote {
		t.Errorf("mode = %q, want remote", cfg.Mode)
	}
	if cfg.ServerURL != "http://deck.example:8080" {
		t.Errorf("server_url = %q", cfg.ServerURL)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("listen_addr default lost: %q", cfg.ListenAddr)
	}
}

func TestParseRejectsRemoteWithoutURL(t *testing.T) {
	if _, err := Parse([]byte(`{"mode": "remote"}`)); err == nil {
		t.Fatalf("remote mode without server_url accepted")
	}
}

func TestParseRejectsUnknownMode(t *testing.T) {
	if _, err := Parse([]byte(`{"mode": "cloud"}`)); err == nil {
		t.Fatalf("unknown mode accepted")
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"mode": `)); err == nil {
		t.Fatalf("malformed config accepted")
	}
}

func TestLoadMissingFileIsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != ModeLocal {
		t.Errorf("mode = %q, want local default", cfg.Mode)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"mode": "local", "database_path": "/tmp/deck-test.db"}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabasePath != "/tmp/deck-test.db" {
		t.Errorf("database_path = %q", cfg.DatabasePath)
	}
}
