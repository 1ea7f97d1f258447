// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

/*
Package types defines mxsift's information model. Which is rather simple and
mainly revolves around [Record] and [CheckedRecord], as well as the check
[Status] of records.

A [Record] is a plain CSV data row together with its input position; a
[CheckedRecord] is the same row augmented with the derived output columns
(offending-address echo, syntax verdict, MX verdict, and status label). Records
move through the pipeline by value: a record is owned by exactly one in-flight
checking task at any time, so there is no locking on records themselves.

Unexpected per-record faults are part of the model, not Go errors: a fault
turns into [Faulted] status with one of the closed set of [FaultKind] causes,
so a broken row always ends up labeled in the "bad" output instead of
terminating a run.
*/
package types
