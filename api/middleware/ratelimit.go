package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// RateLimiter implements a token bucket rate limiter
type RateLimiter struct {
	config *RateLimitConfig

	// Buckets by key (IP or user address)
	buckets   map[string]*Bucket
	bucketsMu sync.RWMutex

	// Transaction submission limits (stricter)
	txBuckets   map[string]*Bucket
	txBucketsMu sync.RWMutex

	// Cleanup ticker
	cleanupTicker *time.Ticker
	stopCh        chan struct{}
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	// IP-based limits
	IPRequestsPerSecond int
	IPBurst             int
	IPBlockDuration     time.Duration

	// User-based limits (identified users)
	UserRequestsPerSecond int
	UserBurst             int

	// Transaction submission limits (invest, redeem, listings)
	TxPerSecond int
	TxBurst     int

	// Cleanup
	CleanupInterval time.Duration
	BucketTTL       time.Duration
}

// DefaultRateLimitConfig returns default configuration
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		IPRequestsPerSecond: 100,
		IPBurst:             200,
		IPBlockDuration:     time.Minute,

		UserRequestsPerSecond: 200,
		UserBurst:             400,

		TxPerSecond: 10,
		TxBurst:     20,

		CleanupInterval: time.Minute * 5,
		BucketTTL:       time.Hour,
	}
}

// Bucket represents a token bucket for rate limiting
type Bucket struct {
	tokens       float64
	maxTokens    float64
	refillRate   float64 // tokens per second
	lastUpdate   time.Time
	blocked      bool
	blockedUntil time.Time
	mu           sync.Mutex
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(config *RateLimitConfig) *RateLimiter {
	if config == nil {
		config = DefaultRateLimitConfig()
	}

	rl := &RateLimiter{
		config:        config,
		buckets:       make(map[string]*Bucket),
		txBuckets:     make(map[string]*Bucket),
		cleanupTicker: time.NewTicker(config.CleanupInterval),
		stopCh:        make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop stops the rate limiter
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
	rl.cleanupTicker.Stop()
}

// cleanupLoop periodically cleans up expired buckets
func (rl *RateLimiter) cleanupLoop() {
	for {
		select {
		case <-rl.cleanupTicker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup removes expired buckets
func (rl *RateLimiter) cleanup() {
	threshold := time.Now().Add(-rl.config.BucketTTL)

	rl.bucketsMu.Lock()
	for key, bucket := range rl.buckets {
		bucket.mu.Lock()
		if bucket.lastUpdate.Before(threshold) {
			delete(rl.buckets, key)
		}
		bucket.mu.Unlock()
	}
	rl.bucketsMu.Unlock()

	rl.txBucketsMu.Lock()
	for key, bucket := range rl.txBuckets {
		bucket.mu.Lock()
		if bucket.lastUpdate.Before(threshold) {
			delete(rl.txBuckets, key)
		}
		bucket.mu.Unlock()
	}
	rl.txBucketsMu.Unlock()
}

// getBucket gets or creates a bucket for a key
func (rl *RateLimiter) getBucket(key string, maxTokens, refillRate float64) *Bucket {
	rl.bucketsMu.RLock()
	bucket, ok := rl.buckets[key]
	rl.bucketsMu.RUnlock()

	if ok {
		return bucket
	}

	rl.bucketsMu.Lock()
	defer rl.bucketsMu.Unlock()

	// Double-check after acquiring write lock
	if bucket, ok := rl.buckets[key]; ok {
		return bucket
	}

	bucket = &Bucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastUpdate: time.Now(),
	}
	rl.buckets[key] = bucket
	return bucket
}

// getTxBucket gets or creates a transaction bucket for a key
func (rl *RateLimiter) getTxBucket(key string) *Bucket {
	rl.txBucketsMu.RLock()
	bucket, ok := rl.txBuckets[key]
	rl.txBucketsMu.RUnlock()

	if ok {
		return bucket
	}

	rl.txBucketsMu.Lock()
	defer rl.txBucketsMu.Unlock()

	// Double-check
	if bucket, ok := rl.txBuckets[key]; ok {
		return bucket
	}

	bucket = &Bucket{
		tokens:     float64(rl.config.TxBurst),
		maxTokens:  float64(rl.config.TxBurst),
		refillRate: float64(rl.config.TxPerSecond),
		lastUpdate: time.Now(),
	}
	rl.txBuckets[key] = bucket
	return bucket
}

// AllowIP checks if a request from an IP is allowed
func (rl *RateLimiter) AllowIP(ip string) (bool, *RateLimitInfo) {
	bucket := rl.getBucket("ip:"+ip, float64(rl.config.IPBurst), float64(rl.config.IPRequestsPerSecond))
	return rl.tryConsume(bucket, 1)
}

// AllowUser checks if a request from a user is allowed
func (rl *RateLimiter) AllowUser(userID string) (bool, *RateLimitInfo) {
	bucket := rl.getBucket("user:"+userID, float64(rl.config.UserBurst), float64(rl.config.UserRequestsPerSecond))
	return rl.tryConsume(bucket, 1)
}

// AllowTx checks if a transaction submission is allowed
func (rl *RateLimiter) AllowTx(userID string) (bool, *RateLimitInfo) {
	bucket := rl.getTxBucket("tx:" + userID)
	return rl.tryConsume(bucket, 1)
}

// tryConsume tries to consume a token from a bucket
func (rl *RateLimiter) tryConsume(bucket *Bucket, tokens float64) (bool, *RateLimitInfo) {
	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	now := time.Now()

	// Check if blocked
	if bucket.blocked && now.Before(bucket.blockedUntil) {
		return false, &RateLimitInfo{
			Allowed:    false,
			Remaining:  0,
			Limit:      int(bucket.maxTokens),
			RetryAfter: int(bucket.blockedUntil.Sub(now).Seconds()) + 1,
			LimitType:  "blocked",
		}
	}
	bucket.blocked = false

	// Refill tokens
	elapsed := now.Sub(bucket.lastUpdate).Seconds()
	bucket.tokens += elapsed * bucket.refillRate
	if bucket.tokens > bucket.maxTokens {
		bucket.tokens = bucket.maxTokens
	}
	bucket.lastUpdate = now

	if bucket.tokens >= tokens {
		bucket.tokens -= tokens
		return true, &RateLimitInfo{
			Allowed:   true,
			Remaining: int(bucket.tokens),
			Limit:     int(bucket.maxTokens),
			LimitType: "rate",
		}
	}

	// Not enough tokens, block the bucket
	bucket.blocked = true
	bucket.blockedUntil = now.Add(rl.config.IPBlockDuration)

	retryAfter := int((tokens-bucket.tokens)/bucket.refillRate) + 1
	return false, &RateLimitInfo{
		Allowed:    false,
		Remaining:  0,
		Limit:      int(bucket.maxTokens),
		RetryAfter: retryAfter,
		LimitType:  "rate",
	}
}

// RateLimitInfo contains rate limit information
type RateLimitInfo struct {
	Allowed    bool   `json:"allowed"`
	Remaining  int    `json:"remaining"`
	Limit      int    `json:"limit"`
	RetryAfter int    `json:"retry_after,omitempty"`
	LimitType  string `json:"limit_type"`
}

// ============ HTTP Middleware ============

// RateLimitMiddleware creates an HTTP middleware for rate limiting
func RateLimitMiddleware(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)

			allowed, info := rl.AllowIP(ip)
			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
				w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
				if info.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%d", info.RetryAfter))
				}
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"error":       "rate_limit_exceeded",
					"message":     "Too many requests, please slow down",
					"retry_after": info.RetryAfter,
				})
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))

			// Check user rate limit if authenticated
			userID := getUserFromContext(r.Context())
			if userID != "" {
				allowed, userInfo := rl.AllowUser(userID)
				if !allowed {
					w.Header().Set("Content-Type", "application/json")
					if userInfo.RetryAfter > 0 {
						w.Header().Set("Retry-After", fmt.Sprintf("%d", userInfo.RetryAfter))
					}
					w.WriteHeader(http.StatusTooManyRequests)
					_ = json.NewEncoder(w).Encode(map[string]interface{}{
						"error":       "rate_limit_exceeded",
						"message":     "User rate limit exceeded",
						"retry_after": userInfo.RetryAfter,
					})
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// TxRateLimitMiddleware creates an HTTP middleware for transaction rate limiting
func TxRateLimitMiddleware(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := getUserFromContext(r.Context())
			if userID == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "unauthorized",
					"message": "Authentication required for transaction submission",
				})
				return
			}

			allowed, info := rl.AllowTx(userID)
			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				if info.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%d", info.RetryAfter))
				}
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"error":       "tx_limit_exceeded",
					"message":     "Transaction rate limit exceeded",
					"retry_after": info.RetryAfter,
				})
				return
			}

			w.Header().Set("X-RateLimit-Tx-Remaining", fmt.Sprintf("%d", info.Remaining))

			next.ServeHTTP(w, r)
		})
	}
}

// Helper context key for user ID
type contextKey string

const userContextKey contextKey = "user_id"

// SetUserContext sets the user ID in context
func SetUserContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userContextKey, userID)
}

// getUserFromContext gets the user ID from context
func getUserFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userContextKey).(string); ok {
		return userID
	}
	return ""
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to remote address
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}

// GetStats returns current rate limiter statistics
func (rl *RateLimiter) GetStats() *Stats {
	rl.bucketsMu.RLock()
	totalBuckets := len(rl.buckets)
	blockedCount := 0
	for _, b := range rl.buckets {
		b.mu.Lock()
		if b.blocked && time.Now().Before(b.blockedUntil) {
			blockedCount++
		}
		b.mu.Unlock()
	}
	rl.bucketsMu.RUnlock()

	rl.txBucketsMu.RLock()
	txBuckets := len(rl.txBuckets)
	rl.txBucketsMu.RUnlock()

	return &Stats{
		TotalBuckets:   totalBuckets,
		TxBuckets:      txBuckets,
		BlockedBuckets: blockedCount,
	}
}

// Stats returns rate limiter statistics
type Stats struct {
	TotalBuckets   int `json:"total_buckets"`
	TxBuckets      int `json:"tx_buckets"`
	BlockedBuckets int `json:"blocked_buckets"`
}
