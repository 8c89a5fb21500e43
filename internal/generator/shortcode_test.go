package generator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{name: "Default length", length: DefaultLength},
		{name: "Length 16", length: 16},
		{name: "Length 0", length: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.length)
			require.NoError(t, err)
			assert.Len(t, got, tt.length)

			for _, c := range got {
				assert.True(t, strings.ContainsRune(Alphabet, c), "unexpected character %q", c)
			}
		})
	}
}

func TestGenerate_Distinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		code, err := Generate(DefaultLength)
		require.NoError(t, err)
		seen[code] = struct{}{}
	}

	// 62^6 codes; a handful of collisions in 1000 draws would mean a broken source
	assert.Greater(t, len(seen), 995)
}

func TestGenerate_NegativeLength(t *testing.T) {
	_, err := Generate(-1)
	assert.Error(t, err)
}

func TestGenerateFrom_RejectsBiasedBytes(t *testing.T) {
	// 255 and 250 are above the unbiased cutoff and must be skipped
	src := bytes.NewReader([]byte{255, 0, 250, 61, 26, 52, 0, 0, 0, 0, 0, 0})

	got, err := GenerateFrom(src, 4)
	require.NoError(t, err)
	assert.Equal(t, "A9a0", got)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestGenerateFrom_ReaderError(t *testing.T) {
	_, err := GenerateFrom(failingReader{}, DefaultLength)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entropy exhausted")
}
