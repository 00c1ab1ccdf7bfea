package steeltui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Alvsch/steel-tui/console"
	"github.com/Alvsch/steel-tui/internal/appconfig"
)

// sessionPipe feeds scripted terminal bytes to a session device and
// swallows the frames it renders back.
type sessionPipe struct {
	r *io.PipeReader
}

func (p *sessionPipe) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p *sessionPipe) Write(b []byte) (int, error) { return len(b), nil }

func testConfig(t *testing.T) appconfig.Config {
	t.Helper()
	cfg, err := appconfig.DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig returned error: %v", err)
	}
	cfg.DataDir = t.TempDir()
	cfg.Server.Worlds = []appconfig.WorldConfig{{Name: "overworld", Seed: 7}}
	cfg.Server.TickIntervalMillis = 5
	cfg.Server.AutosaveIntervalSeconds = 3600
	cfg.Server.SpawnRadius = 1
	cfg.Console.ScrollbackLines = 500
	cfg.Logging.Level = "debug"
	return cfg
}

func waitForLine(t *testing.T, buf *console.Scrollback, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		lines, _ := buf.Window(0, buf.Len())
		for _, ln := range lines {
			if strings.Contains(ln.Text(), want) {
				return
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("line %q never appeared in the scrollback", want)
}

func TestAppTwoStageShutdown(t *testing.T) {
	cfg := testConfig(t)
	pr, pw := io.Pipe()
	defer pw.Close()
	dev := console.NewSessionDevice(&sessionPipe{r: pr}, 80, 24)

	app, err := New(cfg, Options{Version: "9.9.9", Device: dev})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	waitForLine(t, app.Buffer(), "server starting")

	// A command round trip through the real dispatch path.
	if _, err := pw.Write([]byte("version\r")); err != nil {
		t.Fatalf("write command: %v", err)
	}
	waitForLine(t, app.Buffer(), "> version")
	waitForLine(t, app.Buffer(), "steel-tui 9.9.9")

	// First interrupt: the server drains, the console stays up.
	if _, err := pw.Write([]byte{0x03}); err != nil {
		t.Fatalf("write interrupt: %v", err)
	}
	waitForLine(t, app.Buffer(), "Server stopped")
	waitForLine(t, app.Buffer(), "Press Ctrl+C again to exit.")
	select {
	case err := <-done:
		t.Fatalf("app exited after first interrupt: %v", err)
	default:
	}

	meta := filepath.Join(cfg.DataDir, "worlds", "overworld", "level.json")
	if _, err := os.Stat(meta); err != nil {
		t.Fatalf("expected level data at %s, got %v", meta, err)
	}
	roster := filepath.Join(cfg.DataDir, "players.json")
	if _, err := os.Stat(roster); err != nil {
		t.Fatalf("expected player roster at %s, got %v", roster, err)
	}

	// Second interrupt ends the app.
	if _, err := pw.Write([]byte{0x03}); err != nil {
		t.Fatalf("write interrupt: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("app did not exit after second interrupt")
	}
}

func TestAppExternalCancelDrainsBeforeExit(t *testing.T) {
	cfg := testConfig(t)
	pr, pw := io.Pipe()
	defer pw.Close()
	dev := console.NewSessionDevice(&sessionPipe{r: pr}, 80, 24)

	app, err := New(cfg, Options{Device: dev})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	waitForLine(t, app.Buffer(), "server starting")
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("app did not exit on outside cancellation")
	}

	// The drain must have persisted before Run returned.
	if _, err := os.Stat(filepath.Join(cfg.DataDir, "players.json")); err != nil {
		t.Fatalf("expected player roster after shutdown, got %v", err)
	}
	waitForLine(t, app.Buffer(), "Server stopped")
}

func TestAppRequiresAuthorizedKeysWhenSSHEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.SSH.Enabled = true
	cfg.SSH.AuthorizedKeysPath = filepath.Join(cfg.DataDir, "absent")
	if _, err := New(cfg, Options{}); err == nil {
		t.Fatal("expected error when the authorized_keys file is missing")
	}
}
