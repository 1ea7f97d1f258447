// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package sift

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/siemens/mxsift/types"
)

// Router consumes checked records in arrival order and appends each to either
// the "good" or the "bad" output, based on its status. The router exclusively
// owns both output destinations; routing is strictly single-threaded relative
// to the writers, so the writers need no locking.
type Router struct {
	good, bad   *csv.Writer
	observer    func(types.CheckedRecord)
	wroteHeader bool
	goodCount   int
	badCount    int
}

// RouterOption can be passed to NewRouter when creating new [Router] objects.
type RouterOption func(*Router)

// NewRouter returns a new Router writing CSV to the specified good and bad
// destinations.
func NewRouter(good, bad io.Writer, options ...RouterOption) *Router {
	r := &Router{
		good: csv.NewWriter(good),
		bad:  csv.NewWriter(bad),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// WithObserver registers a function that gets called for every routed record,
// after it has been written out. Useful for live progress tallies.
func WithObserver(fn func(types.CheckedRecord)) RouterOption {
	return func(r *Router) {
		r.observer = fn
	}
}

// WriteHeader writes the augmented header, that is, the original header
// columns followed by [types.DerivedHeader], to both destinations. The header
// goes out exactly once, before any data row; further calls are no-ops.
func (r *Router) WriteHeader(original []string) error {
	if r.wroteHeader {
		return nil
	}
	header := make([]string, 0, len(original)+len(types.DerivedHeader))
	header = append(header, original...)
	header = append(header, types.DerivedHeader...)
	for _, w := range []*csv.Writer{r.good, r.bad} {
		if err := w.Write(header); err != nil {
			return err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	r.wroteHeader = true
	return nil
}

// Route consumes checked records from the specified channel until it is
// closed or the context gets cancelled, routing each record to the proper
// destination. Each row is flushed before the next one gets routed, so an
// abruptly killed run loses at most the row in progress (a soft guarantee,
// not a transactional one).
func (r *Router) Route(ctx context.Context, news <-chan types.CheckedRecord) error {
	for {
		select {
		case verdict, ok := <-news:
			if !ok {
				return nil
			}
			if err := r.route(verdict); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *Router) route(verdict types.CheckedRecord) error {
	if verdict.Status == types.Unchecked {
		// a verdict that arrives undecided must still surface as a labeled
		// row in the "bad" output instead of getting lost or misfiled.
		verdict.Status = types.Faulted
		if verdict.Fault == types.FaultNone {
			verdict.Fault = types.FaultCollect
		}
	}
	w := r.bad
	if verdict.Status.IsGood() {
		w = r.good
	}
	if err := w.Write(verdict.Row()); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if verdict.Status.IsGood() {
		r.goodCount++
	} else {
		r.badCount++
	}
	if r.observer != nil {
		r.observer(verdict)
	}
	return nil
}

// GoodCount returns the number of rows routed to the good destination. Only
// to be read after Route has returned.
func (r *Router) GoodCount() int { return r.goodCount }

// BadCount returns the number of rows routed to the bad destination. Only to
// be read after Route has returned.
func (r *Router) BadCount() int { return r.badCount }
