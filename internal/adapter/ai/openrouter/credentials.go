package openrouter

import (
	"strings"
	"sync"
	"time"
)

// credential is one API key slot with its health state.
type credential struct {
	key              string
	failures         int
	rateLimitedUntil time.Time
}

// credentialPool is an explicit round-robin selector over API key slots with
// per-credential health. A single mutex guards the pool; selection never
// depends on wall-clock bucketing, so rotation is deterministic and testable.
type credentialPool struct {
	mu       sync.Mutex
	creds    []*credential
	next     int
	cooldown time.Duration
	now      func() time.Time
}

func newCredentialPool(keys []string, cooldown time.Duration) *credentialPool {
	p := &credentialPool{cooldown: cooldown, now: time.Now}
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k != "" {
			p.creds = append(p.creds, &credential{key: k})
		}
	}
	return p
}

// Size returns the number of configured credential slots.
func (p *credentialPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.creds)
}

// Acquire returns the next credential slot in round-robin order, skipping
// slots still inside their rate-limit cooldown. ok is false when every slot
// is cooling down or the pool is empty.
func (p *credentialPool) Acquire() (slot int, key string, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.creds)
	if n == 0 {
		return 0, "", false
	}
	now := p.now()
	for i := 0; i < n; i++ {
		idx := (p.next + i) % n
		c := p.creds[idx]
		if now.Before(c.rateLimitedUntil) {
			continue
		}
		p.next = (idx + 1) % n
		return idx, c.key, true
	}
	return 0, "", false
}

// MarkRateLimited puts a slot into its cooldown window.
func (p *credentialPool) MarkRateLimited(slot int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if slot < 0 || slot >= len(p.creds) {
		return
	}
	c := p.creds[slot]
	c.failures++
	c.rateLimitedUntil = p.now().Add(p.cooldown)
}

// MarkFailure records a non-rate-limit failure on a slot.
func (p *credentialPool) MarkFailure(slot int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if slot < 0 || slot >= len(p.creds) {
		return
	}
	p.creds[slot].failures++
}

// MarkSuccess resets a slot's failure count.
func (p *credentialPool) MarkSuccess(slot int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if slot < 0 || slot >= len(p.creds) {
		return
	}
	p.creds[slot].failures = 0
}
