// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "strconv"

// Record is a single CSV data row on its way through the checking pipeline.
// The original field schema is arbitrary and opaque; only the email field at a
// fixed position is interpreted. A record's identity is its position in the
// input, there is no uniqueness constraint on the fields.
type Record struct {
	Position int       // 1-based data row number (not counting the header).
	Fields   []string  // the original CSV fields, unmodified.
	Fault    FaultKind // optionally records a fault, such as an unparsable row.
}

// CheckedRecord is a Record augmented with the outcome of the syntax and
// domain deliverability checks. It is what finally gets written into either
// the "good" or the "bad" output.
type CheckedRecord struct {
	Record
	InvalidEmail string // echoes the offending address, only when syntax failed.
	SyntaxOK     bool
	MXOK         bool
	Status       Status
}

// DerivedHeader lists the output columns appended to the original header, in
// output order.
var DerivedHeader = []string{"Invalid Email", "syntax_ok", "mx_ok", "status"}

// StatusLabel returns the label for the "status" output column; faulted
// records additionally carry their fault kind.
func (c CheckedRecord) StatusLabel() string {
	if c.Status == Faulted {
		return c.Status.String() + ": " + c.Fault.String()
	}
	return c.Status.String()
}

// Row renders the checked record as an output CSV row: the original fields
// followed by the derived columns.
func (c CheckedRecord) Row() []string {
	row := make([]string, 0, len(c.Fields)+len(DerivedHeader))
	row = append(row, c.Fields...)
	return append(row,
		c.InvalidEmail,
		strconv.FormatBool(c.SyntaxOK),
		strconv.FormatBool(c.MXOK),
		c.StatusLabel())
}
