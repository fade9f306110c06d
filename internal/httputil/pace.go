// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"time"

	"golang.org/x/time/rate"
)

// NewLimiter returns a pacer that lets the first call through immediately
// and spaces later calls by delay. A non-positive delay disables pacing.
func NewLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
