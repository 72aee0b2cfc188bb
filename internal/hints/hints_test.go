// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package hints

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "lensfolio/cli/internal/errors"
)

func TestNetworkCause(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Cause
	}{
		{name: "nil", err: nil, want: CauseNone},
		{name: "deadline", err: fmt.Errorf("dial: %w", context.DeadlineExceeded), want: CauseTimeout},
		{name: "dns", err: &net.DNSError{Err: "no such host", Name: "redis.invalid"}, want: CauseDNS},
		{name: "refused errno", err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, want: CauseRefused},
		{name: "refused text", err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), want: CauseRefused},
		{name: "tls", err: errors.New("x509: certificate signed by unknown authority"), want: CauseTLS},
		{name: "other", err: errors.New("boom"), want: CauseNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NetworkCause(tt.err))
		})
	}
}

func TestExplain(t *testing.T) {
	refused := apperrors.Wrap(apperrors.StorageUnavailable, "redis get", errors.New("connection refused"))
	adv, ok := Explain(fmt.Errorf("rehydrate session: %w", refused))
	assert.True(t, ok)
	assert.Contains(t, adv.Title, "refused")

	adv, ok = Explain(apperrors.Wrap(apperrors.StorageUnavailable, "keyring get", errors.New("locked")))
	assert.True(t, ok)
	assert.Contains(t, adv.Title, "unavailable")

	for _, kind := range []apperrors.Kind{apperrors.StorageCorrupt, apperrors.ConfigInvalid, apperrors.CookieImportFailed} {
		adv, ok := Explain(apperrors.New(kind, "x"))
		assert.True(t, ok, string(kind))
		assert.NotEmpty(t, adv.Tips, string(kind))
	}

	_, ok = Explain(errors.New("plain"))
	assert.False(t, ok)
	_, ok = Explain(nil)
	assert.False(t, ok)
}
