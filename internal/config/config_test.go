package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
backend:
  baseurl: http://students.internal:5000/api/students
  timeout: 3s
server:
  listenaddress: 0.0.0.0:9000
sessions:
  maxviews: 10
`

func TestParseConfigDefaults(t *testing.T) {
	config, err := ParseConfig("")
	if err != nil {
		t.Fatal("Failed to parse config:", err)
	}

	if config.Backend.BaseURL != "http://localhost:5000/api/students" {
		t.Fatalf("Unexpected base url: %s", config.Backend.BaseURL)
	}
	if config.Backend.Timeout != time.Second*10 {
		t.Fatalf("Unexpected timeout: %v", config.Backend.Timeout)
	}
	if config.Sessions.TTL != time.Hour || config.Sessions.MaxViews != 1000 {
		t.Fatalf("Unexpected sessions config: %+v", config.Sessions)
	}
	if config.Server.ListenAddress != "localhost:8080" {
		t.Fatalf("Unexpected listen address: %s", config.Server.ListenAddress)
	}
}

func TestParseConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SM_BACKEND_TIMEOUT", "7s")
	t.Setenv("SM_SERVER_COOKIES_SECURE", "true")

	config, err := ParseConfig(path)
	if err != nil {
		t.Fatal("Failed to parse config:", err)
	}

	if config.Backend.BaseURL != "http://students.internal:5000/api/students" {
		t.Fatalf("Unexpected base url: %s", config.Backend.BaseURL)
	}
	if config.Backend.Timeout != time.Second*7 {
		t.Fatalf("Env must override file, got timeout %v", config.Backend.Timeout)
	}
	if !config.Server.Cookies.Secure {
		t.Fatal("Expected secure cookies from env")
	}
	if config.Server.ListenAddress != "0.0.0.0:9000" || config.Sessions.MaxViews != 10 {
		t.Fatalf("Unexpected config: %+v", config)
	}
}

func TestParseConfigMissingFile(t *testing.T) {
	if _, err := ParseConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}
