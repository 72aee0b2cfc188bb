// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"errors"
	"testing"
	"time"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		s    Session
		want bool
	}{
		{name: "both present", s: Session{SessionID: "abc", UserID: "123"}, want: true},
		{name: "missing session id", s: Session{UserID: "123"}, want: false},
		{name: "missing user id", s: Session{SessionID: "abc"}, want: false},
		{name: "whitespace session id", s: Session{SessionID: "  ", UserID: "123"}, want: false},
		{name: "zero value", s: Session{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	in := Session{SessionID: "abc", UserID: "123", CapturedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("x", 3600))}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !out.Equal(in) {
		t.Errorf("Decode() = %+v, want %+v", out, in)
	}
}

func TestEncodeRejectsInvalid(t *testing.T) {
	if _, err := Encode(Session{SessionID: "abc"}); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Encode() error = %v, want ErrInvalidRecord", err)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "{{{"},
		{name: "truncated", data: `{"version":1,"session_id":"ab`},
		{name: "unknown version", data: `{"version":7,"session_id":"abc","user_id":"123"}`},
		{name: "empty user id", data: `{"version":1,"session_id":"abc","user_id":""}`},
		{name: "empty object", data: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data)); !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Decode() error = %v, want ErrInvalidRecord", err)
			}
		})
	}
}
