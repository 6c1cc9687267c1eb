package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDataDirEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvHome, tmp)

	d, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir(): %v", err)
	}
	if d != tmp {
		t.Fatalf("expected %s got %s", tmp, d)
	}
}

func TestDBPathEnvOverride(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "custom.db")
	t.Setenv(EnvDB, tmp)

	p, err := DBPath()
	if err != nil {
		t.Fatalf("DBPath(): %v", err)
	}
	if p != tmp {
		t.Fatalf("expected %s got %s", tmp, p)
	}
}

func TestEnsureDataDirCreatesDir(t *testing.T) {
	t.Setenv(EnvHome, "")
	tmp := t.TempDir()
	// fake home by setting HOME/USERPROFILE
	t.Setenv("HOME", tmp)
	t.Setenv("USERPROFILE", tmp)

	d, err := EnsureDataDir()
	if err != nil {
		t.Fatalf("EnsureDataDir(): %v", err)
	}
	if d != filepath.Join(tmp, ".statussaver") {
		t.Fatalf("unexpected data dir %s", d)
	}
	if _, err := os.Stat(d); err != nil {
		t.Fatalf("expected dir %s to exist: %v", d, err)
	}
}

func TestConfigAndLogPathsLiveInDataDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvHome, tmp)

	c, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath(): %v", err)
	}
	if c != filepath.Join(tmp, "config.toml") {
		t.Fatalf("unexpected config path %s", c)
	}
	l, err := LogPath()
	if err != nil {
		t.Fatalf("LogPath(): %v", err)
	}
	if l != filepath.Join(tmp, "statussaver.log") {
		t.Fatalf("unexpected log path %s", l)
	}
}
