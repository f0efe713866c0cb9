package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pomodoro/focus/internal/config"
	"pomodoro/focus/internal/model"
)

func useYAMLStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORE_DRIVER", config.DriverYAML)
	path := filepath.Join(dir, "pomodoro.yaml")
	t.Setenv("STORE_PATH", path)
	return path
}

func seedHistory(t *testing.T, entries ...model.SessionHistoryEntry) {
	t.Helper()
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	defer closeBackend()
	for _, entry := range entries {
		if err := backend.UpsertDay(context.Background(), entry); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
}

func runCommand(t *testing.T, cmd *cobra.Command, run func(*cobra.Command, []string) error, flags map[string]string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set flag %s: %v", name, err)
		}
	}
	t.Cleanup(func() {
		cmd.Flags().VisitAll(func(flag *pflag.Flag) {
			_ = flag.Value.Set(flag.DefValue)
		})
	})
	err := run(cmd, nil)
	return out.String(), err
}

func TestOpenBackendSQLite(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(dir, "pomodoro.db")

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		t.Fatalf("open sqlite backend: %v", err)
	}
	defer closeBackend()

	if err := backend.Save(context.Background(), model.SettingsWorkKey, "30"); err != nil {
		t.Fatalf("save: %v", err)
	}
	value, err := backend.Load(context.Background(), model.SettingsWorkKey)
	if err != nil || value != "30" {
		t.Fatalf("expected 30, got %q %v", value, err)
	}
}

func TestOpenBackendRejectsUnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.StoreDriver = "memory"
	if _, _, err := openBackend(cfg); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestHistoryListAndClear(t *testing.T) {
	useYAMLStore(t)
	seedHistory(t,
		model.SessionHistoryEntry{DateKey: "Sat Oct 17 2026", Day: "2026-10-17", WorkTime: 50, Sessions: 2},
		model.SessionHistoryEntry{DateKey: "Sun Oct 18 2026", Day: "2026-10-18", WorkTime: 75, BreakTime: 10, Sessions: 3},
	)

	out, err := runCommand(t, historyListCmd, runHistoryList, map[string]string{"from": "2026-10-18"})
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if strings.Contains(out, "Sat Oct 17 2026") || !strings.Contains(out, "Sun Oct 18 2026") {
		t.Fatalf("unexpected listing:\n%s", out)
	}
	if !strings.Contains(out, "Total: 1 days, 3 sessions, work 1h 15m, break 10m") {
		t.Fatalf("unexpected totals:\n%s", out)
	}

	if _, err := runCommand(t, historyClearCmd, runHistoryClear, nil); err == nil {
		t.Fatal("expected clear without --yes to fail")
	}
	if _, err := runCommand(t, historyClearCmd, runHistoryClear, map[string]string{"yes": "true"}); err != nil {
		t.Fatalf("history clear: %v", err)
	}

	out, err = runCommand(t, historyListCmd, runHistoryList, nil)
	if err != nil {
		t.Fatalf("history list after clear: %v", err)
	}
	if !strings.Contains(out, "No session history found.") {
		t.Fatalf("expected empty history, got:\n%s", out)
	}
}

func TestHistoryListRejectsBadDate(t *testing.T) {
	useYAMLStore(t)
	if _, err := runCommand(t, historyListCmd, runHistoryList, map[string]string{"to": "18.10.2026"}); err == nil {
		t.Fatal("expected invalid date error")
	}
}

func TestReportWritesPDF(t *testing.T) {
	useYAMLStore(t)
	seedHistory(t, model.SessionHistoryEntry{DateKey: "Sun Oct 18 2026", Day: "2026-10-18", WorkTime: 25, Sessions: 1})

	target := filepath.Join(t.TempDir(), "report.pdf")
	out, err := runCommand(t, reportCmd, runReport, map[string]string{"out": target})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "(1 days)") {
		t.Fatalf("unexpected output: %s", out)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("expected PDF output")
	}
}

func TestMigrateSkipsYAMLStore(t *testing.T) {
	useYAMLStore(t)
	out, err := runCommand(t, migrateCmd, runMigrate, nil)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "no migrations") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := config.Default()
	cfg.ToneEnabled = false
	cfg.AppEnv = "development"
	cfg.DefaultWorkMinutes = 50

	options := engineOptions(cfg)
	if options.Defaults.WorkMinutes != 50 || options.Defaults.BreakMinutes != 5 {
		t.Fatalf("unexpected defaults: %+v", options.Defaults)
	}
	if !options.Strict {
		t.Fatal("expected strict options in development")
	}
	if options.TickInterval != cfg.TickInterval {
		t.Fatalf("unexpected tick interval: %v", options.TickInterval)
	}
}

func TestMigrateSQLiteReportsPendingThenApplies(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORE_DRIVER", config.DriverSQLite)
	t.Setenv("DB_PATH", filepath.Join(dir, "pomodoro.db"))
	t.Setenv("MIGRATIONS_DIR", "")

	out, err := runCommand(t, migrateCmd, runMigrate, map[string]string{"dry-run": "true"})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !strings.Contains(out, "pending 001_init.sql") {
		t.Fatalf("unexpected dry run output: %s", out)
	}
	if err := migrateCmd.Flags().Set("dry-run", "false"); err != nil {
		t.Fatalf("reset flag: %v", err)
	}

	out, err = runCommand(t, migrateCmd, runMigrate, nil)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "applied 002_tasks.sql") {
		t.Fatalf("unexpected migrate output: %s", out)
	}

	out, err = runCommand(t, migrateCmd, runMigrate, nil)
	if err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if !strings.Contains(out, "up to date") {
		t.Fatalf("expected up to date, got: %s", out)
	}
}

func TestPassphraseSetAndRemove(t *testing.T) {
	useYAMLStore(t)

	passphraseSetCmd.SetIn(strings.NewReader("deep-work\n"))
	t.Cleanup(func() { passphraseSetCmd.SetIn(nil) })
	out, err := runCommand(t, passphraseSetCmd, runPassphraseSet, nil)
	if err != nil {
		t.Fatalf("passphrase set: %v", err)
	}
	if !strings.Contains(out, "Passphrase set.") {
		t.Fatalf("unexpected output: %s", out)
	}

	passphraseSetCmd.SetIn(strings.NewReader("another-one\n"))
	if _, err := runCommand(t, passphraseSetCmd, runPassphraseSet, nil); err == nil {
		t.Fatal("expected second set to fail while a passphrase exists")
	}

	if _, err := runCommand(t, passphraseRemoveCmd, runPassphraseRemove, nil); err == nil {
		t.Fatal("expected remove without --yes to fail")
	}
	if _, err := runCommand(t, passphraseRemoveCmd, runPassphraseRemove, map[string]string{"yes": "true"}); err != nil {
		t.Fatalf("passphrase remove: %v", err)
	}

	passphraseSetCmd.SetIn(strings.NewReader("deep-work-2\n"))
	if _, err := runCommand(t, passphraseSetCmd, runPassphraseSet, nil); err != nil {
		t.Fatalf("set after remove: %v", err)
	}
}

func TestReadPassphraseFromPipe(t *testing.T) {
	got, err := readPassphrase(strings.NewReader("secret phrase\r\n"), io.Discard)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "secret phrase" {
		t.Fatalf("unexpected passphrase %q", got)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}
