package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LimiterStore keeps one token bucket per key, such as a client IP.
// Keys idle for longer than expiresIn are dropped.
type LimiterStore struct {
	limiters    map[string]*visitor
	mu          sync.Mutex
	r           rate.Limit
	burst       int
	expiresIn   time.Duration
	lastCleanup time.Time
	now         func() time.Time
}

func NewLimiterStore(r rate.Limit, burst int, expiresIn time.Duration) *LimiterStore {
	return &LimiterStore{
		limiters:    make(map[string]*visitor),
		r:           r,
		burst:       burst,
		expiresIn:   expiresIn,
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

func (s *LimiterStore) GetLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.expiresIn > 0 && now.Sub(s.lastCleanup) > s.expiresIn {
		for k, v := range s.limiters {
			if now.Sub(v.lastSeen) > s.expiresIn {
				delete(s.limiters, k)
			}
		}
		s.lastCleanup = now
	}

	if v, exists := s.limiters[key]; exists {
		v.lastSeen = now
		return v.limiter
	}
	limiter := rate.NewLimiter(s.r, s.burst)
	s.limiters[key] = &visitor{limiter: limiter, lastSeen: now}
	return limiter
}

// Allow satisfies echo's RateLimiterStore.
func (s *LimiterStore) Allow(identifier string) (bool, error) {
	return s.GetLimiter(identifier).Allow(), nil
}

func (s *LimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}
