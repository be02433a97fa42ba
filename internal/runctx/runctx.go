// Package runctx tags a context with the identity of one scrape run.
package runctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

type key int

const runKey key = 0

// Run identifies one invocation across all categories
type Run struct {
	ID        string
	StartTime time.Time
}

// With returns a context carrying a fresh Run
func With(ctx context.Context) context.Context {
	return context.WithValue(ctx, runKey, &Run{
		ID:        generateID(),
		StartTime: time.Now(),
	})
}

// From returns the Run stored in ctx, or a placeholder with ID "unknown"
func From(ctx context.Context) *Run {
	if r, ok := ctx.Value(runKey).(*Run); ok {
		return r
	}
	return &Run{
		ID:        "unknown",
		StartTime: time.Now(),
	}
}

func generateID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b)
}
