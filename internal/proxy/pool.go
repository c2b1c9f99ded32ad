// Package proxy rotates page fetches across a set of outbound proxies.
package proxy

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// failureCooldown is how long a proxy marked failed is skipped before it is
// eligible again.
const failureCooldown = 5 * time.Minute

// Pool hands out proxies round-robin, skipping ones that failed recently.
type Pool struct {
	proxies []*url.URL
	index   int
	mu      sync.Mutex
	failed  map[string]time.Time
}

// NewPool parses the proxy addresses and builds a rotation pool. An empty
// list yields a nil pool, which callers treat as direct connections.
func NewPool(addrs []string) (*Pool, error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	proxies := make([]*url.URL, 0, len(addrs))
	for _, addr := range addrs {
		u, err := url.Parse(addr)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy address: %s", addr)
		}
		proxies = append(proxies, u)
	}
	return &Pool{
		proxies: proxies,
		failed:  make(map[string]time.Time),
	}, nil
}

// ProxyFunc adapts the pool to http.Transport.Proxy. A nil pool returns nil
// so the transport falls back to direct connections.
func (p *Pool) ProxyFunc() func(*http.Request) (*url.URL, error) {
	if p == nil {
		return nil
	}
	return func(*http.Request) (*url.URL, error) {
		return p.Next(), nil
	}
}

// Next returns the next healthy proxy in rotation. When every proxy is in
// cooldown the current one is returned anyway; a bad proxy beats no crawl.
func (p *Pool) Next() *url.URL {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return nil
	}

	start := p.index
	for {
		u := p.proxies[p.index]
		p.index = (p.index + 1) % len(p.proxies)

		if failTime, ok := p.failed[u.String()]; ok {
			if time.Since(failTime) < failureCooldown {
				if p.index == start {
					return u
				}
				continue
			}
			delete(p.failed, u.String())
		}
		return u
	}
}

// MarkFailed puts a proxy in cooldown so rotation skips it for a while.
func (p *Pool) MarkFailed(addr string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed[addr] = time.Now()
}

// MarkHealthy clears a proxy's cooldown.
func (p *Pool) MarkHealthy(addr string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failed, addr)
}

// Len returns the number of proxies in the pool.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.proxies)
}
