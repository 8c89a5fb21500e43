package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikhailRaia/shorturls/internal/generator"
)

type mockChecker struct {
	existsFunc func(code string) bool
	calls      []string
}

func (m *mockChecker) Exists(code string) bool {
	m.calls = append(m.calls, code)
	return m.existsFunc(code)
}

func setOf(codes ...string) *mockChecker {
	taken := make(map[string]bool, len(codes))
	for _, c := range codes {
		taken[c] = true
	}
	return &mockChecker{existsFunc: func(code string) bool { return taken[code] }}
}

// sequence returns a generator that hands out codes in order.
func sequence(codes ...string) func(int) (string, error) {
	i := 0
	return func(int) (string, error) {
		code := codes[i%len(codes)]
		i++
		return code, nil
	}
}

func TestNewAllocator_Defaults(t *testing.T) {
	a := NewAllocator(0, 0)
	assert.Equal(t, generator.DefaultLength, a.length)
	assert.Equal(t, DefaultMaxAttempts, a.maxAttempts)
}

func TestAllocator_Allocate(t *testing.T) {
	tests := []struct {
		name      string
		taken     []string
		custom    string
		generated []string
		want      string
		wantErr   error
		wantCalls int
	}{
		{
			name:      "Custom code free",
			custom:    "abc123",
			want:      "abc123",
			wantCalls: 1,
		},
		{
			name:      "Custom code taken",
			taken:     []string{"abc123"},
			custom:    "abc123",
			wantErr:   ErrDuplicateShortcode,
			wantCalls: 1,
		},
		{
			name:      "Generated code free on first try",
			generated: []string{"AAAAAA"},
			want:      "AAAAAA",
			wantCalls: 1,
		},
		{
			name:      "Generated code collides then succeeds",
			taken:     []string{"AAAAAA", "BBBBBB"},
			generated: []string{"AAAAAA", "BBBBBB", "CCCCCC"},
			want:      "CCCCCC",
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAllocator(6, 10)
			if tt.generated != nil {
				a.generate = sequence(tt.generated...)
			}
			checker := setOf(tt.taken...)

			got, err := a.Allocate(checker, tt.custom)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Len(t, checker.calls, tt.wantCalls)
		})
	}
}

func TestAllocator_Exhausted(t *testing.T) {
	a := NewAllocator(6, 5)
	a.generate = sequence("AAAAAA")
	checker := setOf("AAAAAA")

	_, err := a.Allocate(checker, "")

	require.ErrorIs(t, err, ErrAllocationExhausted)
	assert.Len(t, checker.calls, 5)
}

func TestAllocator_GeneratorError(t *testing.T) {
	a := NewAllocator(6, 5)
	a.generate = func(int) (string, error) { return "", errors.New("no entropy") }

	_, err := a.Allocate(setOf(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entropy")
	assert.NotErrorIs(t, err, ErrAllocationExhausted)
}

func TestAllocator_RealGenerator(t *testing.T) {
	a := NewAllocator(generator.DefaultLength, DefaultMaxAttempts)

	code, err := a.Allocate(setOf(), "")
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, strings.ContainsRune(generator.Alphabet, c))
	}
}
