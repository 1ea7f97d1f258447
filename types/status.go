// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Status classifies the outcome of checking a single record, such as valid,
// invalid syntax, et cetera.
type Status int

// The classification outcomes of a checked record.
const (
	Unchecked     Status = iota // record not (fully) checked yet.
	Valid                       // syntax and domain both check out.
	InvalidSyntax               // address fails the syntax grammar.
	InvalidDomain               // syntax fine, but no MX record for the domain.
	MissingEmail                // email field absent or blank.
	Faulted                     // an unexpected per-record fault, see FaultKind.
)

// String returns the clear-text representation of a Status value; these are
// also the labels written into the "status" output column.
func (s Status) String() string {
	switch s {
	case Unchecked:
		return "Unchecked"
	case Valid:
		return "Valid"
	case InvalidSyntax:
		return "Invalid Syntax"
	case InvalidDomain:
		return "Invalid Domain"
	case MissingEmail:
		return "Missing Email"
	case Faulted:
		return "Error"
	}
	return fmt.Sprintf("Status(%d)", s)
}

// IsGood returns true if a record with this status belongs into the "good"
// output, false for the "bad" output.
func (s Status) IsGood() bool {
	return s == Valid
}

// FaultKind enumerates the closed set of unexpected per-record fault causes.
// Faults are always confined to the record they occurred on; they never abort
// a run.
type FaultKind int

const (
	FaultNone    FaultKind = iota // no fault.
	FaultRow                      // the CSV row itself could not be parsed.
	FaultPanic                    // a check panicked while processing the record.
	FaultCollect                  // a completed result could not be collected intact.
)

// String returns the clear-text representation of a FaultKind value.
func (k FaultKind) String() string {
	switch k {
	case FaultNone:
		return "none"
	case FaultRow:
		return "row"
	case FaultPanic:
		return "panic"
	case FaultCollect:
		return "collect"
	}
	return fmt.Sprintf("FaultKind(%d)", k)
}
