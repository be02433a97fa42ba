package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestHostLimiter_SeparateBucketsPerHost(t *testing.T) {
	limiter := NewHostLimiter(1, 1)
	ctx := context.Background()

	start := time.Now()
	if err := limiter.Wait(ctx, "https://a.example.com/x"); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "https://b.example.com/y"); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Expected first request per host to pass immediately, took %v", elapsed)
	}
	if len(limiter.limiters) != 2 {
		t.Errorf("Expected 2 host buckets, got %d", len(limiter.limiters))
	}
}

func TestHostLimiter_CancelledContext(t *testing.T) {
	limiter := NewHostLimiter(0.001, 1)
	ctx, cancel := context.WithCancel(context.Background())

	if err := limiter.Wait(ctx, "https://a.example.com/"); err != nil {
		t.Fatalf("First Wait failed: %v", err)
	}

	cancel()
	if err := limiter.Wait(ctx, "https://a.example.com/"); err == nil {
		t.Error("Expected error from cancelled context, got nil")
	}
}

func TestHostLimiter_InvalidURLPassesThrough(t *testing.T) {
	limiter := NewHostLimiter(1, 1)
	if err := limiter.Wait(context.Background(), "::not a url"); err != nil {
		t.Errorf("Expected invalid URL to pass through, got %v", err)
	}
}
