// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"
)

func TestWrapChain(t *testing.T) {
	err := fmt.Errorf("load: %w", Wrap(StorageUnavailable, "keychain locked", io.EOF))

	if !stderrors.Is(err, io.EOF) {
		t.Error("expected wrapped cause to be reachable")
	}
	if !stderrors.Is(err, New(StorageUnavailable, "")) {
		t.Error("expected kind match")
	}
	if stderrors.Is(err, New(StorageCorrupt, "")) {
		t.Error("unexpected kind match")
	}
	if got := KindOf(err); got != StorageUnavailable {
		t.Errorf("KindOf() = %q, want %q", got, StorageUnavailable)
	}
	if got := KindOf(io.EOF); got != "" {
		t.Errorf("KindOf() = %q, want empty", got)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *E
		want string
	}{
		{name: "with cause", err: Wrap(StorageCorrupt, "bad record", io.EOF), want: "storage_corrupt: bad record: EOF"},
		{name: "without cause", err: New(ConfigInvalid, "empty domain"), want: "config_invalid: empty domain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
