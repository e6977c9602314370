package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return base })
	rule := RateLimitRule{Rate: 1, Burst: 3}

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", rule)
		if !allowed {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}
	allowed, retryAfter := limiter.Allow("1.2.3.4", rule)
	if allowed {
		t.Fatalf("request beyond burst should be denied")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %v", retryAfter)
	}
}

func TestRateLimiterRefillsOverTime(t *testing.T) {
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return current })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("client", rule); !allowed {
		t.Fatalf("first request should pass")
	}
	if allowed, _ := limiter.Allow("client", rule); allowed {
		t.Fatalf("second immediate request should be denied")
	}

	current = current.Add(2 * time.Second)
	if allowed, _ := limiter.Allow("client", rule); !allowed {
		t.Fatalf("request after refill should pass")
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return base })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("a", rule); !allowed {
		t.Fatalf("client a should pass")
	}
	if allowed, _ := limiter.Allow("b", rule); !allowed {
		t.Fatalf("client b should not share client a's bucket")
	}
}
