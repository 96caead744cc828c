package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestInitLoggerUsesConfiguredCacheDir verifies the session log lands in
// the cache directory from the config.
func TestInitLoggerUsesConfiguredCacheDir(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "cache")

	initLogger(&Config{LogEnabled: true, CacheDir: cacheDir})
	t.Cleanup(func() {
		loggingEnabled = false
		sessionLogger = nil
	})

	logf("INFO", "session %s started", "abc")

	data, err := os.ReadFile(filepath.Join(cacheDir, "session.log"))
	if err != nil {
		t.Fatalf("reading session log: %v", err)
	}
	if !strings.Contains(string(data), "[INFO] session abc started") {
		t.Errorf("log contents = %q", data)
	}
}

func TestInitLoggerDisabled(t *testing.T) {
	cacheDir := t.TempDir()

	initLogger(&Config{LogEnabled: false, CacheDir: cacheDir})
	logf("INFO", "ignored")

	if FileExists(filepath.Join(cacheDir, "session.log")) {
		t.Error("no log file should be created when logging is disabled")
	}
}
