// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package browser

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lensfolio/cli/internal/auth"
	"lensfolio/cli/internal/logging"
)

func TestCommandFor(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{goos: "windows", want: []string{"rundll32", "url.dll,FileProtocolHandler", "https://example.com/"}},
		{goos: "darwin", want: []string{"open", "https://example.com/"}},
		{goos: "linux", want: []string{"xdg-open", "https://example.com/"}},
		{goos: "freebsd", want: []string{"xdg-open", "https://example.com/"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.want, commandFor(tt.goos, "https://example.com/").Args)
		})
	}
}

func TestSystemOpen(t *testing.T) {
	var started *exec.Cmd
	s := &System{Logger: logging.Discard(), goos: "linux", start: func(c *exec.Cmd) error {
		started = c
		return nil
	}}

	require.NoError(t, s.Open(context.Background(), "https://example.com/accounts/login/"))
	require.NotNil(t, started)
	assert.Equal(t, []string{"xdg-open", "https://example.com/accounts/login/"}, started.Args)
	assert.NoError(t, s.Close())

	s.start = func(*exec.Cmd) error { return errors.New("no opener") }
	assert.Error(t, s.Open(context.Background(), "https://example.com/"))
}

const netscapeJar = "# Netscape HTTP Cookie File\n" +
	".example.com\tTRUE\t/\tTRUE\t0\tsessionid\tabc\n" +
	".example.com\tTRUE\t/\tTRUE\t0\tds_user_id\t123\n" +
	".other.com\tTRUE\t/\tFALSE\t0\tsessionid\tzzz\n"

func TestWatcherEmitsJar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(path, []byte(netscapeJar), 0o600))

	attempt := uuid.New()
	w := &Watcher{Path: path, Domain: "example.com", Attempt: attempt, Interval: 10 * time.Millisecond}

	var got auth.Navigation
	err := w.Run(context.Background(), func(n auth.Navigation) bool {
		got = n
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, attempt, got.Attempt)
	require.Len(t, got.Cookies, 2)
	assert.Equal(t, "sessionid", got.Cookies[0].Name)
	assert.Equal(t, "abc", got.Cookies[0].Value)
}

func TestWatcherRetriesUntilStoreAppears(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	w := &Watcher{Path: path, Domain: "example.com", Interval: 10 * time.Millisecond}

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = os.WriteFile(path, []byte(netscapeJar), 0o600)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	polls := 0
	err := w.Run(ctx, func(n auth.Navigation) bool {
		polls++
		return len(n.Cookies) > 0
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, polls, 1)
}

func TestWatcherStopsOnContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(path, []byte(netscapeJar), 0o600))
	w := &Watcher{Path: path, Domain: "example.com", Interval: 10 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := w.Run(ctx, func(auth.Navigation) bool { return false })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWatcherRequiresPath(t *testing.T) {
	err := (&Watcher{}).Run(context.Background(), func(auth.Navigation) bool { return true })
	assert.Error(t, err)
}
