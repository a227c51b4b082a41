package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	// Verify the expected structure: $HOME/.cache/mstcc
	expected := filepath.Join(home, ".cache", "mstcc")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheClearRemovesSolutions(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	ui := captureUI(t)
	inst := writeSmall(t)

	c := New(io.Discard, LogInfo)
	c.Out = io.Discard
	for _, seed := range []string{"1", "2"} {
		root := c.RootCommand()
		root.SetArgs([]string{"solve", inst, "--seed", seed})
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("solve: %v", err)
		}
	}

	ui.Reset()
	root := c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(ui.String(), "Cleared 2 cached solutions") {
		t.Errorf("cache clear output = %q", ui.String())
	}
}

func TestNewCacheNoCache(t *testing.T) {
	c := New(io.Discard, LogInfo)
	store, keyer, err := c.newCache(context.Background(), true, "")
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	defer store.Close()
	if keyer != nil {
		t.Error("null cache should use the default keyer")
	}
	if _, ok, _ := store.Get(context.Background(), "k"); ok {
		t.Error("null cache reported a hit")
	}
}

func TestNewCacheRejectsBadRedisAddr(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if _, _, err := c.newCache(context.Background(), false, "no-port"); err == nil {
		t.Error("expected error for address without port")
	}
}
