// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

/*
Package verify implements the concurrent record-checking pipeline: syntax
validation, domain deliverability via a [DomainChecker], and the bounded
worker pool tying them together.

	                 +---+
	chan Record ---->| V |----> chan CheckedRecord
	                 +---+

[Verifier] objects support concurrent record checking jobs with maximum
goroutine limits, plus a semaphore-gated in-flight cap so that a fast producer
reading a huge CSV cannot outrun a slow consumer into unbounded buffering.
Verdicts are streamed in completion order, which intentionally is not the
submission order; the only guarantee is that every submitted record yields
exactly one verdict.

The per-record check itself never fails: missing and malformed data, resolver
trouble and even panics all become status labels on the record (see
[github.com/siemens/mxsift/types]), so a single rotten row cannot abort a
batch run.
*/
package verify
