package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeExpiry(t *testing.T) {
	assert.Equal(t, int64(1_000_086_400), ComputeExpiry(1_000_000_000, DefaultValiditySeconds))
	assert.Equal(t, int64(101), ComputeExpiry(100, 1))
	assert.Equal(t, int64(90), ComputeExpiry(100, -10))
}

func TestShortURLEntry_Expired(t *testing.T) {
	entry := ShortURLEntry{URL: "https://example.com", Expiry: 200}

	tests := []struct {
		name string
		now  int64
		want bool
	}{
		{name: "before expiry", now: 199, want: false},
		{name: "at expiry", now: 200, want: false},
		{name: "after expiry", now: 201, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entry.Expired(tt.now))
		})
	}
}
