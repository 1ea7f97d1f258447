// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/siemens/mxsift/types"
	"github.com/siemens/mxsift/verify"
)

// displayOrder fixes the order in which the per-status counts get rendered.
var displayOrder = []types.Status{
	types.Valid,
	types.InvalidSyntax,
	types.InvalidDomain,
	types.MissingEmail,
	types.Faulted,
}

// renderer renders the terminal display, based on the submission counters of
// the verifier and the per-status tally fed by the router.
type renderer struct {
	inputName string
	w         io.Writer
	spinner   *spinner
	verifier  *verify.Verifier
	tally     *verify.Tally
	start     time.Time
}

// newRenderer returns a renderer object rendering to the specified io.Writer.
// inputName identifies the contact list being sifted.
func newRenderer(w io.Writer, inputName string, verifier *verify.Verifier, tally *verify.Tally, start time.Time) *renderer {
	sp := newSpinner()
	sp.Start(*spinnerInterval)
	return &renderer{
		inputName: inputName,
		w:         w,
		spinner:   sp,
		verifier:  verifier,
		tally:     tally,
		start:     start,
	}
}

// Stop the renderer's background ticker.
func (r *renderer) Stop() {
	r.spinner.Stop()
}

// Render the current sifting progress.
func (r *renderer) Render() {
	submitted := r.verifier.Submitted()
	processed := r.verifier.Processed()
	// If nothing has been submitted yet, show a proxy message.
	if submitted == 0 {
		fmt.Fprintf(r.w, "reading contact list %s...\n", inputNameStyle.Styled(r.inputName))
		return
	}
	fmt.Fprintf(r.w, "%ssifting %s: %d rows submitted, %d processed (%.1fs)\n",
		r.spinner.Spinner(),
		inputNameStyle.Styled(r.inputName),
		submitted, processed,
		time.Since(r.start).Seconds())
	counts := r.tally.Snapshot()
	for _, status := range displayOrder {
		count, ok := counts[status]
		if !ok {
			continue
		}
		label := fmt.Sprintf(" %s %d ", status, count)
		switch status {
		case types.Valid:
			fmt.Fprint(r.w, goodCountStyle.Styled(" ✔"+label))
		default:
			fmt.Fprint(r.w, badCountStyle.Styled(" ×"+label))
		}
	}
	if pending := submitted - processed; pending > 0 {
		fmt.Fprint(r.w, pendingCountStyle.Styled(fmt.Sprintf(" … %d in flight ", pending)))
	}
	fmt.Fprintln(r.w)
}
