// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package domain_test

import (
	"testing"
	"time"

	"github.com/smoothtype/smoothtype/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsStale(t *testing.T) {
	t.Parallel()

	backup := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		gap  time.Duration
		want bool
	}{
		{name: "identical timestamps", gap: 0, want: false},
		{name: "59 seconds newer", gap: 59 * time.Second, want: false},
		{name: "exactly 60 seconds is still fresh", gap: 60 * time.Second, want: false},
		{name: "61 seconds newer", gap: 61 * time.Second, want: true},
		{name: "120 seconds newer", gap: 120 * time.Second, want: true},
		{name: "61 seconds older", gap: -61 * time.Second, want: true},
		{name: "30 seconds older", gap: -30 * time.Second, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domain.IsStale(backup, backup.Add(tt.gap)))
		})
	}
}
