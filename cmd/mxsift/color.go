// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import "github.com/muesli/termenv"

var (
	pendingCountStyle = termenv.Style{}.Foreground(termenv.ANSIYellow)
	goodCountStyle    = termenv.Style{}.Foreground(termenv.ANSIGreen)
	badCountStyle     = termenv.Style{}.Foreground(termenv.ANSIRed)
)

var inputNameStyle = termenv.Style{}.Bold()
