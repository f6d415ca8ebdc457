// Package pnr generates six-character reservation codes.
package pnr

import (
	"context"
	"math/rand/v2"

	"github.com/flamingoair/flamingo-backend/internal/domain"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	Length   = 6

	// MaxAttempts bounds the regenerate-on-collision loop. With a 36^6
	// keyspace exhausting it means something is badly wrong with the store,
	// not with the generator.
	MaxAttempts = 10
)

// ExistsFunc reports whether a candidate code is already taken.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// New returns a random candidate code. Characters are drawn independently
// and uniformly; the result is not suitable for anything security-sensitive.
func New() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// Generate returns a code that the existence check did not report as taken.
// The caller must still guard the eventual insert with a unique constraint:
// two concurrent generations can both pass the check with the same code.
func Generate(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		code := New()
		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", domain.NewUnavailable("could not allocate a unique PNR")
}
