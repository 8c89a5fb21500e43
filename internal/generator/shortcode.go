package generator

import (
	"crypto/rand"
	"fmt"
	"io"
)

// DefaultLength is the length of generated shortcodes.
const DefaultLength = 6

// Alphabet holds the characters a generated shortcode is drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// bytes at or above this value are rejected to keep the modulo unbiased
const maxUnbiased = 256 - 256%len(Alphabet)

// Generate returns a random shortcode of the given length drawn uniformly from Alphabet.
// It does not guarantee uniqueness.
func Generate(length int) (string, error) {
	return GenerateFrom(rand.Reader, length)
}

// GenerateFrom is Generate with an explicit randomness source.
func GenerateFrom(r io.Reader, length int) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("invalid shortcode length %d", length)
	}

	code := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)

	for len(code) < length {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			code = append(code, Alphabet[int(b)%len(Alphabet)])
			if len(code) == length {
				break
			}
		}
	}

	return string(code), nil
}
