// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pterm/pterm"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Cookie header",
			input:    "Cookie: csrftoken=x; sessionid=4412%3Aabc%3A9; ds_user_id=4412",
			expected: "Cookie: csrftoken=x; sessionid=***; ds_user_id=***",
		},
		{
			name:     "Query string",
			input:    "https://i.instagram.com/api?sessionid=abc&lang=en",
			expected: "https://i.instagram.com/api?sessionid=***&lang=en",
		},
		{
			name:     "Password parameter",
			input:    "password=secret123",
			expected: "password=***",
		},
		{
			name:     "Bearer token",
			input:    "Authorization: Bearer abc.def.ghi",
			expected: "Authorization: Bearer ***",
		},
		{
			name:     "Seal key in config dump",
			input:    `"seal_key": "00aa11bb"`,
			expected: `"seal_key": "***"`,
		},
		{
			name:     "Nothing to mask",
			input:    "state changed to authenticated",
			expected: "state changed to authenticated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Mask(tt.input)
			if result != tt.expected {
				t.Errorf("Mask() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestPresentError(t *testing.T) {
	if got := PresentError("save", nil); got != "" {
		t.Errorf("PresentError(nil) = %q, want empty", got)
	}
	got := PresentError("save", errors.New("write sessionid=abc failed"))
	if got != "save: write sessionid=*** failed" {
		t.Errorf("PresentError() = %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]pterm.LogLevel{
		"debug":   pterm.LogLevelDebug,
		"TRACE":   pterm.LogLevelTrace,
		"warning": pterm.LogLevelWarn,
		"error":   pterm.LogLevelError,
		"off":     pterm.LogLevelDisabled,
		"":        pterm.LogLevelInfo,
		"bogus":   pterm.LogLevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", &buf, true)
	l.Debug("hidden")
	l.Info("visible", l.Args("state", "authenticated"))

	out := buf.String()
	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Errorf("debug line written at info level: %s", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("visible")) || !bytes.Contains(buf.Bytes(), []byte("authenticated")) {
		t.Errorf("expected info line with args, got %s", out)
	}
}
