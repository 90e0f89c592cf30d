package httpapi

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiter_PerClient(t *testing.T) {
	l := newClientLimiter(RateLimitConfig{RequestsPerSecond: 0.01, BurstSize: 1})

	a := httptest.NewRequest("POST", "/", nil)
	a.RemoteAddr = "10.0.0.1:5000"
	b := httptest.NewRequest("POST", "/", nil)
	b.RemoteAddr = "10.0.0.2:5000"

	ok, _ := l.Allow(a)
	assert.True(t, ok)

	ok, retry := l.Allow(a)
	assert.False(t, ok)
	assert.Positive(t, retry)

	ok, _ = l.Allow(b)
	assert.True(t, ok, "other clients keep their own bucket")
}

func TestClientLimiter_Defaults(t *testing.T) {
	l := newClientLimiter(RateLimitConfig{})
	assert.Equal(t, DefaultCommentRateLimit, l.cfg)
}

func TestClientKey(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	r.RemoteAddr = "192.0.2.7:4312"
	assert.Equal(t, "192.0.2.7", clientKey(r))

	r.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", clientKey(r))
}
