// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

/*
Package mxcheck implements the domain deliverability check: does a domain own
at least one MX resource record? Mxsift uses a [Pool] with a pool of “DNS
workers” for the MX lookups and a [Cache] in front of it so that each unique
domain in the input gets looked up (roughly) once.

Usage

	pool, err := mxcheck.New(
	    context.Background(),
	    4,                     // number of parallel DNS connections and thus workers
	    &dns.Client{},         // DNS client
	    mxcheck.SystemResolverAddress(),
	)
	if err != nil {
	    // no DNS connectivity, no deliverability checks.
	}
	cache := mxcheck.NewCache(pool)
	ok := cache.HasMX(ctx, "example.com") // true or false, never an error

The split between [Pool] and [Cache] keeps the network plumbing replaceable:
a Cache accepts anything satisfying the [Resolver] interface, so tests swap
the Pool for a stub without ever touching DNS.

# Acknowledgements

Under its hood, [Pool] leverages [github.com/gammazero/workerpool] as the
limiting goroutine pool.

[github.com/gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package mxcheck
