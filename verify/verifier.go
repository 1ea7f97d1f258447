// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verify

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/siemens/mxsift/types"

	"github.com/gammazero/workerpool"
	"golang.org/x/sync/semaphore"
)

// DomainChecker decides whether a domain can receive mail; it never fails,
// any trouble deciding uniformly reports as false. The production checker is
// an [github.com/siemens/mxsift/mxcheck.Cache].
type DomainChecker interface {
	HasMX(ctx context.Context, domain string) bool
}

// Verifier verifies a stream of records, running the per-record syntax and
// domain checks on a limited pool of worker goroutines and streaming the
// verdicts to an output channel as they are decided. A semaphore caps the
// number of in-flight records, so arbitrarily large inputs never pile up in
// memory when the consumer is slower than the producer.
type Verifier struct {
	checker     DomainChecker
	column      int   // index of the email field within a record.
	size        int   // number of parallel checking workers.
	maxInFlight int64 // cap on submitted-but-not-yet-collected records.

	workers   *workerpool.WorkerPool
	inflight  *semaphore.Weighted
	news      chan types.CheckedRecord
	submitted atomic.Uint64
	processed atomic.Uint64
}

// Option can be passed to New when creating new [Verifier] objects.
type Option func(*Verifier)

// New returns a new Verifier handing domain deliverability decisions off to
// the specified checker, together with its verdict stream. The verdict
// channel sends [types.CheckedRecord] elements in completion order, which is
// not the submission order.
//
// The new verifier defaults to 50 parallel workers, at most 1000 in-flight
// records, and the email address in the second record field. The verifier can
// be configured during creation using several options:
//   - [WithWorkers]
//   - [WithMaxInFlight]
//   - [WithEmailColumn]
func New(checker DomainChecker, options ...Option) (*Verifier, <-chan types.CheckedRecord) {
	v := &Verifier{
		checker:     checker,
		column:      1,
		size:        50,
		maxInFlight: 1000,
	}
	for _, opt := range options {
		opt(v)
	}
	v.workers = workerpool.New(v.size)
	v.inflight = semaphore.NewWeighted(v.maxInFlight)
	v.news = make(chan types.CheckedRecord, v.size)
	return v, v.news
}

// WithWorkers sets the number of parallel checking workers. This is also the
// upper bound on concurrent outbound DNS lookups, so it is as much a
// politeness control towards the resolver as a throughput one.
func WithWorkers(size int) Option {
	return func(v *Verifier) {
		v.size = size
	}
}

// WithMaxInFlight caps the number of records submitted but not yet collected
// by the consumer of the verdict stream. The cap bounds the memory held in
// outstanding record state; it is not a correctness control.
func WithMaxInFlight(max int) Option {
	return func(v *Verifier) {
		v.maxInFlight = int64(max)
	}
}

// WithEmailColumn sets the zero-based index of the record field holding the
// candidate email address, instead of the conventional second field.
func WithEmailColumn(column int) Option {
	return func(v *Verifier) {
		v.column = column
	}
}

// Verify verifies the incoming stream of records until the input channel is
// closed. It then waits for all enqueued checking tasks to complete, closes
// the verdict channel returned by New, and finally returns.
//
// When the in-flight cap is reached, Verify blocks further submissions until
// the consumer has collected at least one outstanding verdict. In case the
// specified context is cancelled, Verify stops pulling new records and
// returns as soon as possible, closing the verdict channel.
func (v *Verifier) Verify(ctx context.Context, in <-chan types.Record) {
slurpRecords:
	for {
		select {
		case rec, ok := <-in:
			if !ok {
				break slurpRecords
			}
			// The backpressure gate: a semaphore slot per in-flight record,
			// released only after the verdict has been handed over to the
			// consumer stream.
			if err := v.inflight.Acquire(ctx, 1); err != nil {
				break slurpRecords
			}
			v.submitted.Add(1)
			v.workers.Submit(func() {
				defer v.inflight.Release(1)
				verdict := v.check(ctx, rec)
				// Avoid blocking endlessly in case of the context getting
				// cancelled while the consumer is gone.
				select {
				case v.news <- verdict:
					v.processed.Add(1)
				case <-ctx.Done():
				}
			})
		case <-ctx.Done():
			break slurpRecords
		}
	}
	v.workers.StopWait()
	close(v.news)
}

// Submitted returns the number of records submitted to workers so far.
func (v *Verifier) Submitted() uint64 { return v.submitted.Load() }

// Processed returns the number of verdicts handed to the consumer so far.
func (v *Verifier) Processed() uint64 { return v.processed.Load() }

// check runs the per-record checks and must never let anything escape: one
// rotten record must not spoil the batch. Whatever panics inside the checks
// gets converted into a Faulted verdict, preserving any partial syntax result
// computed up to that point.
func (v *Verifier) check(ctx context.Context, rec types.Record) (verdict types.CheckedRecord) {
	verdict = types.CheckedRecord{Record: rec}
	var email string
	if v.column < len(rec.Fields) {
		email = strings.TrimSpace(rec.Fields[v.column])
	}
	defer func() {
		if r := recover(); r != nil {
			verdict.Status = types.Faulted
			verdict.Fault = types.FaultPanic
			verdict.MXOK = false
			verdict.InvalidEmail = ""
			if !verdict.SyntaxOK {
				// syntax not (yet) confirmed, so still echo the address.
				verdict.InvalidEmail = email
			}
		}
	}()
	if rec.Fault != types.FaultNone {
		verdict.Status = types.Faulted
		return
	}
	if email == "" {
		verdict.Status = types.MissingEmail
		return
	}
	if !ValidSyntax(email) {
		verdict.InvalidEmail = email
		verdict.Status = types.InvalidSyntax
		return
	}
	verdict.SyntaxOK = true
	verdict.MXOK = v.checker.HasMX(ctx, Domain(email))
	if verdict.MXOK {
		verdict.Status = types.Valid
	} else {
		verdict.Status = types.InvalidDomain
	}
	return
}
