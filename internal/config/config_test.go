package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.CategoryLimit != 12 || c.SeriesRowLimit != 200 {
		t.Fatalf("limits = %d/%d", c.CategoryLimit, c.SeriesRowLimit)
	}
	if c.OutputFormat != "markdown" || c.LogLevel != "info" {
		t.Fatalf("format/log = %s/%s", c.OutputFormat, c.LogLevel)
	}
	if c.DataDir != filepath.Join(home, ".tabloom", "data") {
		t.Fatalf("data dir = %s", c.DataDir)
	}
}

func TestSaveThenLoadFileAndEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())
	path := filepath.Join(home, "custom.yaml")

	c := &Global{CategoryLimit: 5, OutputFormat: "json", DataDir: filepath.Join(home, "d")}
	if err := Save(c, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	t.Setenv("TABLOOM_SERIES_ROW_LIMIT", "50")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CategoryLimit != 5 || got.OutputFormat != "json" || got.DataDir != filepath.Join(home, "d") {
		t.Fatalf("file values not applied: %#v", got)
	}
	if got.SeriesRowLimit != 50 {
		t.Fatalf("env override not applied: %d", got.SeriesRowLimit)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd := t.TempDir()
	chdir(t, wd)
	if err := os.WriteFile(filepath.Join(wd, ".env"), []byte("TABLOOM_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set; make sure
	// the test starts from a clean slate and restores it afterwards.
	t.Setenv("TABLOOM_LOG_LEVEL", "")
	os.Unsetenv("TABLOOM_LOG_LEVEL")

	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.LogLevel != "debug" {
		t.Fatalf("log level = %s", c.LogLevel)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
