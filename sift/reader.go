// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package sift

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"

	"github.com/siemens/mxsift/types"
)

// ErrEmptyInput signals an input without even a header row; this is a setup
// fault that terminates a run, in contrast to all per-record trouble.
var ErrEmptyInput = errors.New("input is empty")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader streams CSV data rows as [types.Record] elements, so that inputs far
// larger than memory can trickle through the pipeline. An optional leading
// UTF-8 byte-order mark is treated as noise and skipped.
type Reader struct {
	csv      *csv.Reader
	position int // most recent 1-based data row number.
}

// NewReader returns a new Reader streaming CSV records from the specified
// source. The CSV handling is deliberately lenient: rows may differ in their
// field counts and stray quotes are tolerated, as contact lists in the wild
// are rarely pristine.
func NewReader(source io.Reader) *Reader {
	buffered := bufio.NewReader(source)
	if bom, err := buffered.Peek(len(utf8BOM)); err == nil && bytes.Equal(bom, utf8BOM) {
		_, _ = buffered.Discard(len(utf8BOM))
	}
	c := csv.NewReader(buffered)
	c.FieldsPerRecord = -1
	c.LazyQuotes = true
	return &Reader{csv: c}
}

// Header reads and returns the header row. An input without any rows at all
// returns [ErrEmptyInput]. Call Header exactly once, before Stream.
func (r *Reader) Header() ([]string, error) {
	header, err := r.csv.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, err
	}
	return header, nil
}

// Stream reads data rows and sends them to the specified channel until the
// source is exhausted or the context gets cancelled; it then closes the
// channel and returns. Rows the CSV layer cannot parse are not lost: they
// turn into records carrying [types.FaultRow] so that they still surface as
// labeled rows in the "bad" output.
func (r *Reader) Stream(ctx context.Context, rows chan<- types.Record) error {
	defer close(rows)
	for {
		fields, err := r.csv.Read()
		if err == io.EOF {
			return nil
		}
		r.position++
		rec := types.Record{Position: r.position, Fields: fields}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return err // the source itself went sour, not just one row.
			}
			rec.Fields = nil
			rec.Fault = types.FaultRow
		}
		select {
		case rows <- rec:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Rows returns the number of data rows read so far.
func (r *Reader) Rows() int { return r.position }
