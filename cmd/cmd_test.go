package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/VoxDroid/statussaver/internal/config"
	modelpkg "github.com/VoxDroid/statussaver/internal/tui/model"
	"github.com/VoxDroid/statussaver/internal/version"
)

// setupTempHome points the data dir (and so the database and save dir) at
// a fresh temp directory.
func setupTempHome(t *testing.T) string {
	t.Helper()
	d := t.TempDir()
	t.Setenv(config.EnvHome, d)
	t.Setenv(config.EnvDB, "")
	return d
}

// statusDir creates a folder holding two images, a video and a hidden file.
// b.jpg is the newest.
func statusDir(t *testing.T) string {
	t.Helper()
	d := t.TempDir()
	now := time.Now()
	files := []struct {
		name string
		age  time.Duration
	}{
		{"a.jpg", 2 * time.Hour},
		{"b.jpg", time.Minute},
		{"c.mp4", time.Hour},
		{".nomedia.jpg", 0},
	}
	for _, f := range files {
		p := filepath.Join(d, f.name)
		if err := os.WriteFile(p, []byte("data-"+f.name), 0o644); err != nil {
			t.Fatalf("write %s: %v", f.name, err)
		}
		ts := now.Add(-f.age)
		if err := os.Chtimes(p, ts, ts); err != nil {
			t.Fatalf("chtimes %s: %v", f.name, err)
		}
	}
	return d
}

// resetCommands restores every flag to its default and hands every command
// ctx. cobra keeps parsed values and the first context on the package-level
// commands between Execute calls.
func resetCommands(ctx context.Context, c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	c.SetContext(ctx)
	for _, sub := range c.Commands() {
		resetCommands(ctx, sub)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	resetCommands(ctx, rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		t.Logf("stderr: %s", errOut.String())
	}
	return out.String(), err
}

func TestListPrintsImagesNewestFirst(t *testing.T) {
	_ = setupTempHome(t)
	dir := statusDir(t)

	out, err := runCLI(t, "list", "--dir", dir)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	a, b := strings.Index(out, "a.jpg"), strings.Index(out, "b.jpg")
	if a < 0 || b < 0 || b > a {
		t.Fatalf("expected b.jpg before a.jpg, got:\n%s", out)
	}
	if strings.Contains(out, "c.mp4") || strings.Contains(out, ".nomedia") {
		t.Fatalf("unexpected entries in image list:\n%s", out)
	}
}

func TestListVideosAsJSON(t *testing.T) {
	_ = setupTempHome(t)
	dir := statusDir(t)

	out, err := runCLI(t, "list", "--dir", dir, "--videos", "--json")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var items []listedItem
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(items) != 1 || items[0].Name != "c.mp4" || items[0].Kind != "video" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestListRemembersLocation(t *testing.T) {
	_ = setupTempHome(t)
	dir := statusDir(t)

	if _, err := runCLI(t, "list", "--dir", dir); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	out, err := runCLI(t, "location", "show")
	if err != nil {
		t.Fatalf("location show failed: %v", err)
	}
	if strings.TrimSpace(out) != dir {
		t.Fatalf("expected remembered %s, got %q", dir, out)
	}
	out, err = runCLI(t, "list")
	if err != nil {
		t.Fatalf("list without --dir failed: %v", err)
	}
	if !strings.Contains(out, "b.jpg") {
		t.Fatalf("expected remembered folder to be listed, got:\n%s", out)
	}
}

func TestListMissingFolderFails(t *testing.T) {
	_ = setupTempHome(t)
	_, err := runCLI(t, "list", "--dir", filepath.Join(t.TempDir(), "missing"))
	if err == nil || err.Error() != modelpkg.MsgFetchFailed {
		t.Fatalf("expected %q, got %v", modelpkg.MsgFetchFailed, err)
	}
}

func TestSaveCopiesIntoSaveDir(t *testing.T) {
	home := setupTempHome(t)
	dir := statusDir(t)

	out, err := runCLI(t, "save", "--dir", dir, "a.jpg")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.Contains(out, modelpkg.MsgSaved) {
		t.Fatalf("expected success message, got %q", out)
	}
	b, err := os.ReadFile(filepath.Join(home, "saved", "a.jpg"))
	if err != nil {
		t.Fatalf("read saved copy: %v", err)
	}
	if string(b) != "data-a.jpg" {
		t.Fatalf("unexpected saved content %q", b)
	}
}

func TestSaveUnknownNameFails(t *testing.T) {
	_ = setupTempHome(t)
	dir := statusDir(t)

	if _, err := runCLI(t, "save", "--dir", dir, "c.mp4"); err == nil {
		t.Fatalf("expected error saving a video name from the images tab")
	}
	if _, err := runCLI(t, "save", "--dir", dir, "--videos", "c.mp4"); err != nil {
		t.Fatalf("save --videos failed: %v", err)
	}
}

func TestLocationSetAndClear(t *testing.T) {
	_ = setupTempHome(t)
	dir := t.TempDir()

	if _, err := runCLI(t, "location", "set", dir); err != nil {
		t.Fatalf("location set failed: %v", err)
	}
	out, _ := runCLI(t, "location", "show")
	if strings.TrimSpace(out) != dir {
		t.Fatalf("expected %s, got %q", dir, out)
	}
	if _, err := runCLI(t, "location", "clear"); err != nil {
		t.Fatalf("location clear failed: %v", err)
	}
	out, _ = runCLI(t, "location", "show")
	if strings.TrimSpace(out) != "no location set" {
		t.Fatalf("expected cleared location, got %q", out)
	}
}

func TestAnalyticsListsCommandEvents(t *testing.T) {
	_ = setupTempHome(t)
	dir := statusDir(t)

	out, err := runCLI(t, "analytics")
	if err != nil {
		t.Fatalf("analytics failed: %v", err)
	}
	if !strings.Contains(out, "no events recorded") {
		t.Fatalf("expected empty analytics, got %q", out)
	}
	if _, err := runCLI(t, "list", "--dir", dir); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	out, err = runCLI(t, "analytics", "--limit", "5")
	if err != nil {
		t.Fatalf("analytics failed: %v", err)
	}
	if !strings.Contains(out, "cli_list") || !strings.Contains(out, "count=2") {
		t.Fatalf("expected cli_list event with count, got:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out) != "statussaver "+version.Version {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestConfigInitThenShowRoundTrips(t *testing.T) {
	home := setupTempHome(t)

	if _, err := runCLI(t, "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := runCLI(t, "config", "init"); err == nil {
		t.Fatalf("expected second init without --force to fail")
	}
	if _, err := runCLI(t, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}
	out, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, filepath.Join(home, "saved")) || !strings.Contains(out, "event_buffer = 32") {
		t.Fatalf("unexpected settings:\n%s", out)
	}
}

func TestRepeatedRunsGetFreshContext(t *testing.T) {
	_ = setupTempHome(t)
	dir := statusDir(t)

	for i := 0; i < 3; i++ {
		if _, err := runCLI(t, "list", "--dir", dir); err != nil {
			t.Fatalf("run %d: list failed: %v", i, err)
		}
	}
	if _, err := runCLI(t, "save", "--dir", dir, "b.jpg"); err != nil {
		t.Fatalf("save after list failed: %v", err)
	}
}

func TestListRemembersFallbackMode(t *testing.T) {
	_ = setupTempHome(t)
	root := t.TempDir()
	sub := filepath.Join(root, config.DefaultFallbackSubdirs[1])
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "s.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := runCLI(t, "list", "--dir", root, "--fallback"); err != nil {
		t.Fatalf("list --fallback failed: %v", err)
	}
	out, err := runCLI(t, "location", "show")
	if err != nil {
		t.Fatalf("location show failed: %v", err)
	}
	if strings.TrimSpace(out) != root+" (fallback)" {
		t.Fatalf("expected remembered fallback root, got %q", out)
	}
	out, err = runCLI(t, "list")
	if err != nil {
		t.Fatalf("list with remembered fallback failed: %v", err)
	}
	if !strings.Contains(out, "s.jpg") {
		t.Fatalf("expected s.jpg from the fallback folder, got:\n%s", out)
	}

	// an explicit --fallback=false overrides the stored mode
	out, err = runCLI(t, "list", "--fallback=false")
	if err != nil {
		t.Fatalf("plain list of the backup root failed: %v", err)
	}
	if strings.TrimSpace(out) != "no images found" {
		t.Fatalf("expected the root itself to hold no images, got:\n%s", out)
	}
}

func TestLocationSetFallbackThenClear(t *testing.T) {
	_ = setupTempHome(t)
	dir := t.TempDir()

	if _, err := runCLI(t, "location", "set", "--fallback", dir); err != nil {
		t.Fatalf("location set failed: %v", err)
	}
	out, _ := runCLI(t, "location", "show")
	if strings.TrimSpace(out) != dir+" (fallback)" {
		t.Fatalf("expected fallback location, got %q", out)
	}
	if _, err := runCLI(t, "location", "clear"); err != nil {
		t.Fatalf("location clear failed: %v", err)
	}
	if _, err := runCLI(t, "location", "set", dir); err != nil {
		t.Fatalf("location set failed: %v", err)
	}
	out, _ = runCLI(t, "location", "show")
	if strings.TrimSpace(out) != dir {
		t.Fatalf("expected plain location after clear, got %q", out)
	}
}
