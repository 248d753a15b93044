package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/bankstatement/internal/infrastructure/clock"
	"github.com/iho/bankstatement/internal/infrastructure/config"
)

func TestNewClock(t *testing.T) {
	c, err := newClock(&config.Config{ClockTimezone: "UTC", ClockFixedDate: "2012-01-10"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.(*clock.Fixed); !ok {
		t.Fatalf("expected fixed clock, got %T", c)
	}
	if got := c.Today(); !got.Equal(time.Date(2012, time.January, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %s", got)
	}

	c, err = newClock(&config.Config{ClockTimezone: "UTC"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.(*clock.System); !ok {
		t.Fatalf("expected system clock, got %T", c)
	}

	if _, err := newClock(&config.Config{ClockTimezone: "Nowhere/Special"}); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}

func TestNewRouter_ServesDepositsAndStatement(t *testing.T) {
	cfg := &config.Config{
		ClockTimezone:  "UTC",
		ClockFixedDate: "2012-01-10",
		MetricsEnabled: true,
	}

	router, err := newRouter(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/account/deposits", strings.NewReader(`{"amount":1000}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/account/statement", nil))
	if want := "Date || Amount || Balance\n10/01/2012 || 1000 || 1000\n"; rec.Body.String() != want {
		t.Fatalf("unexpected statement %q", rec.Body.String())
	}
}

func TestNewRouter_RateLimitKeysOnPeerAddress(t *testing.T) {
	cfg := &config.Config{
		ClockTimezone: "UTC",
		RateLimit:     1,
		RateBurst:     1,
		RateLimitIdle: time.Minute,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router, err := newRouter(ctx, cfg, zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	throttled := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/account/deposits", strings.NewReader(`{"amount":1}`))
		req.RemoteAddr = "10.0.0.1:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			throttled++
		}
	}

	if throttled != 19 {
		t.Fatalf("expected 19 throttled deposits, got %d", throttled)
	}
}
