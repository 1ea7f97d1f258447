// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package mxcheck

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// stubResolver counts lookups per (already normalized) domain and answers
// from a canned verdict table; domains not in the table report a lookup
// failure.
type stubResolver struct {
	mu       sync.Mutex
	calls    map[string]int
	verdicts map[string]bool
}

func newStubResolver(verdicts map[string]bool) *stubResolver {
	return &stubResolver{
		calls:    map[string]int{},
		verdicts: verdicts,
	}
}

func (r *stubResolver) HasMX(ctx context.Context, domain string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[domain]++
	verdict, ok := r.verdicts[domain]
	if !ok {
		return false, errors.New("stub: lookup failed")
	}
	return verdict, nil
}

func (r *stubResolver) totalCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, count := range r.calls {
		total += count
	}
	return total
}

var _ = Describe("MX verdict cache", func() {

	It("normalizes domains", func() {
		Expect(Normalize(" Example.com. ")).To(Equal("example.com"))
		Expect(Normalize("example.com")).To(Equal("example.com"))
		Expect(Normalize("EXAMPLE.COM")).To(Equal("example.com"))
	})

	It("short-circuits skip-listed domains without any lookup", func(ctx context.Context) {
		resolver := newStubResolver(nil) // would fail any lookup
		cache := NewCache(resolver)

		Expect(cache.HasMX(ctx, "gmail.com")).To(BeTrue())
		Expect(cache.HasMX(ctx, "GMail.com.")).To(BeTrue())
		Expect(resolver.totalCalls()).To(BeZero(), "skip-listed domain hit the resolver")
		Expect(cache.Len()).To(BeZero(), "skip-listed domain got cached")
	})

	It("collapses equivalent domain spellings into one cache entry", func(ctx context.Context) {
		resolver := newStubResolver(map[string]bool{"example.com": true})
		cache := NewCache(resolver)

		for _, spelling := range []string{"Example.com.", "example.com", " example.com "} {
			Expect(cache.HasMX(ctx, spelling)).To(BeTrue(), "spelling %q", spelling)
		}
		Expect(resolver.calls["example.com"]).To(Equal(1))
		Expect(cache.Len()).To(Equal(1))
	})

	It("uniformly maps lookup failures to false and caches them", func(ctx context.Context) {
		resolver := newStubResolver(nil)
		cache := NewCache(resolver)

		Expect(cache.HasMX(ctx, "nonexistent-domain-xyz123.test")).To(BeFalse())
		Expect(cache.HasMX(ctx, "nonexistent-domain-xyz123.test")).To(BeFalse())
		Expect(resolver.totalCalls()).To(Equal(1), "negative verdict wasn't cached")
	})

	It("honors a replaced skip list", func(ctx context.Context) {
		resolver := newStubResolver(map[string]bool{"gmail.com": true})
		cache := NewCache(resolver,
			WithSkipDomains("Corp.Example."),
			WithLookupTimeout(time.Second))

		Expect(cache.HasMX(ctx, "corp.example")).To(BeTrue())
		Expect(resolver.totalCalls()).To(BeZero())
		// the default skip list is gone, so gmail.com now gets looked up.
		Expect(cache.HasMX(ctx, "gmail.com")).To(BeTrue())
		Expect(resolver.calls["gmail.com"]).To(Equal(1))
	})

})
