// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package mxcheck

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Resolver answers whether a domain owns at least one MX resource record. A
// [Pool] is the production resolver; tests substitute their own stubs.
type Resolver interface {
	HasMX(ctx context.Context, domain string) (bool, error)
}

// DefaultSkipDomains is the stock set of well-known mail provider domains
// that are taken to be deliverable without asking any resolver. There's no
// point in hammering DNS for domains whose mail exchangers are a safe bet.
var DefaultSkipDomains = []string{
	"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "aol.com",
	"live.com", "icloud.com", "msn.com", "protonmail.com", "gmx.com",
	"yandex.com", "mail.com", "zoho.com",
}

// Cache memoizes MX verdicts per normalized domain so that unnecessary
// duplicate MX lookups can be avoided. A Cache lives for exactly one run and
// is shared by all checking workers.
type Cache struct {
	resolver Resolver
	timeout  time.Duration
	skip     map[string]struct{}
	mu       sync.RWMutex
	verdicts map[string]bool // normalized domain -> MX-exists verdict
}

// CacheOption can be passed to NewCache when creating new [Cache] objects.
type CacheOption func(*Cache)

// NewCache returns a new Cache handing the actual MX lookups off to the
// specified resolver. Unless [WithSkipDomains] says otherwise, the
// [DefaultSkipDomains] are exempted from lookups.
func NewCache(resolver Resolver, options ...CacheOption) *Cache {
	c := &Cache{
		resolver: resolver,
		timeout:  DefaultTimeout,
		verdicts: map[string]bool{},
	}
	for _, opt := range options {
		opt(c)
	}
	if c.skip == nil {
		c.skip = skipSet(DefaultSkipDomains)
	}
	return c
}

// WithLookupTimeout bounds each individual (uncached) MX lookup instead of
// [DefaultTimeout].
func WithLookupTimeout(timeout time.Duration) CacheOption {
	return func(c *Cache) {
		c.timeout = timeout
	}
}

// WithSkipDomains replaces the default set of domains exempted from MX
// lookups. The specified domains are normalized, so any spelling goes.
func WithSkipDomains(domains ...string) CacheOption {
	return func(c *Cache) {
		c.skip = skipSet(domains)
	}
}

func skipSet(domains []string) map[string]struct{} {
	skip := make(map[string]struct{}, len(domains))
	for _, domain := range domains {
		skip[Normalize(domain)] = struct{}{}
	}
	return skip
}

// Normalize returns the canonical cache key form of a domain: surrounding
// whitespace trimmed, lowercased, and at most one trailing dot stripped.
func Normalize(domain string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
}

// HasMX reports whether the specified domain has at least one MX record,
// never failing: lookup timeouts, NXDOMAIN, server failures, and whatever
// else the resolver runs into all uniformly report as false. Verdicts are
// cached per normalized domain, skip-listed domains short-circuit to true
// without any lookup.
//
// Multiple workers may race on the same uncached domain; they then simply
// look it up multiple times and (idempotently) store the same verdict. The
// cache is an optimization, not a correctness mechanism, so this beats
// serializing all lookups behind a global lock for the duration of the
// network call.
func (c *Cache) HasMX(ctx context.Context, domain string) bool {
	domain = Normalize(domain)
	if _, ok := c.skip[domain]; ok {
		return true
	}
	c.mu.RLock()
	verdict, ok := c.verdicts[domain]
	c.mu.RUnlock()
	if ok {
		return verdict
	}
	lookupCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	verdict, err := c.resolver.HasMX(lookupCtx, domain)
	if err != nil {
		verdict = false
	}
	c.mu.Lock()
	c.verdicts[domain] = verdict
	c.mu.Unlock()
	return verdict
}

// Len returns the number of domain verdicts cached so far; skip-listed
// domains don't count as they never get cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.verdicts)
}
