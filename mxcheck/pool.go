// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package mxcheck

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/miekg/dns"
)

// DefaultTimeout bounds a single MX query, covering both the exchange with
// the resolver and waiting for a free client connection.
const DefaultTimeout = 5 * time.Second

// Pool is a (size-limited) pool of DNS client connections talking with the
// same DNS resolver address, answering "does this domain have a mail
// exchanger?" questions.
type Pool struct {
	timeout time.Duration
	workers *workerpool.WorkerPool
	mu      sync.Mutex // protects the pool of DNS connections
	free    []*dns.Conn
}

// PoolOption can be passed to New when creating new [Pool] objects.
type PoolOption func(*Pool)

// New returns a pool of the specified size of DNS client connections, with
// each connection using the specified context and talking to the same DNS
// resolver address.
//
// MX existence checks are submitted using [Pool.CheckMX]; raw DNS tasks can
// be submitted using [Pool.Submit] in form of task functions receiving a
// concrete [dns.Conn].
//
// The passed context is used for creating (dialing) the DNS client
// connections only. It is not directly passed to the submitted DNS tasks, so
// task submitters are themselves responsible for capturing the necessary
// context in their task function closure.
func New(ctx context.Context, size int, dnsclnt *dns.Client, addr string, options ...PoolOption) (*Pool, error) {
	pool := &Pool{
		timeout: DefaultTimeout,
		workers: workerpool.New(size),
	}
	for _, opt := range options {
		opt(pool)
	}
	free := make([]*dns.Conn, 0, size)
	for i := 0; i < size; i++ {
		conn, err := dnsclnt.DialContext(ctx, addr)
		if err != nil {
			// Immediately release all connections created so far.
			for _, conn := range free {
				conn.Close()
			}
			return nil, err
		}
		free = append(free, conn)
	}
	pool.free = free
	return pool, nil
}

// WithTimeout sets the per-query timeout instead of [DefaultTimeout].
func WithTimeout(timeout time.Duration) PoolOption {
	return func(p *Pool) {
		p.timeout = timeout
	}
}

// SystemResolverAddress returns the "address:port" of the first nameserver
// configured in /etc/resolv.conf, falling back to a well-known public
// resolver if the system configuration cannot be read.
func SystemResolverAddress() string {
	config, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(config.Servers) == 0 {
		return "8.8.8.8:53"
	}
	server := config.Servers[0]
	if !strings.Contains(server, ":") {
		server += ":" + config.Port
	}
	return server
}

// Submit a task to the DNS client connection pool, where it gets enqueued to
// be executed on an available DNS client connection.
func (p *Pool) Submit(task func(conn *dns.Conn)) {
	p.workers.Submit(func() { p.task(task) })
}

// CheckMX is a convenience method for submitting an MX query for the
// specified domain and gathering the result. Whether the domain owns at least
// one MX record, or an error if the query failed, is passed to the specified
// callback function fn.
//
// Please note that when the passed context is cancelled this will cancel all
// in-flight as well as scheduled MX check jobs.
func (p *Pool) CheckMX(ctx context.Context, domain string, fn func(bool, error)) {
	p.Submit(func(conn *dns.Conn) {
		var hasMX bool
		var err error
		defer func() { fn(hasMX, err) }() // ...ensure triggering the result callback on our way out

		// don't run the query if the context has been cancelled; trigger the
		// callback immediately with the context error.
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		msg := dns.Msg{
			MsgHdr: dns.MsgHdr{Id: dns.Id()},
		}
		msg.SetQuestion(dns.Fqdn(domain), dns.TypeMX)
		dnsclnt := dns.Client{Timeout: p.timeout}
		var r *dns.Msg
		r, _, err = dnsclnt.ExchangeWithConn(&msg, conn)
		if err != nil {
			return
		}
		if r.Rcode != dns.RcodeSuccess {
			err = fmt.Errorf("CheckMX: query for %q failed with rcode %s",
				domain, dns.RcodeToString[r.Rcode])
			return
		}
		for _, rr := range r.Answer {
			if _, ok := rr.(*dns.MX); ok {
				hasMX = true
				return
			}
		}
		// A NOERROR answer without any MX resource records means the domain
		// exists but doesn't accept mail; report this as an error so callers
		// see the same shape as for NXDOMAIN.
		err = fmt.Errorf("CheckMX: query for %q yields no MX records", domain)
	})
}

// HasMX synchronously checks whether the specified domain owns at least one
// MX record. Any query failure, whatever the cause, reports as an error next
// to a false verdict. HasMX implements the [Resolver] interface.
func (p *Pool) HasMX(ctx context.Context, domain string) (bool, error) {
	type verdict struct {
		hasMX bool
		err   error
	}
	ch := make(chan verdict, 1)
	p.CheckMX(ctx, domain, func(hasMX bool, err error) {
		ch <- verdict{hasMX: hasMX, err: err}
	})
	select {
	case v := <-ch:
		return v.hasMX, v.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// task grabs the next free DNS client and passes it to the specified
// function. After the function returns, the connection is put back into the
// free list.
func (p *Pool) task(task func(conn *dns.Conn)) {
	// pop off a free DNS client connection,
	// https://ueokande.github.io/go-slice-tricks/,
	p.mu.Lock()
	if len(p.free) == 0 {
		panic("no free DNS client connection available")
	}
	last := len(p.free) - 1
	conn := p.free[last]
	p.free = p.free[:last]
	p.mu.Unlock()
	// run the task with its assigned DNS client connection...
	task(conn)
	// ...and push the DNS client connection back into the free list.
	p.mu.Lock()
	p.free = append(p.free, conn)
	p.mu.Unlock()
}

// StopWait waits for all enqueued MX check or generic DNS request tasks to
// finish, and then shuts down the pool.
func (p *Pool) StopWait() {
	p.workers.StopWait()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, conn := range p.free {
		conn.Close()
	}
	p.free = nil
}
