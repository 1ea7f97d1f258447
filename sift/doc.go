// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

/*
Package sift implements the streaming CSV endpoints of the pipeline: a
[Reader] turning an input CSV into a stream of records, and a [Router]
splitting the stream of checked records into a "good" and a "bad" output CSV.

Both ends are built for lists larger than comfortable memory: the reader
never slurps the input, and the router flushes row by row, so results of a
long run survive an abrupt termination up to the row in progress.
*/
package sift
