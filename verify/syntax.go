// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verify

import (
	"regexp"
	"strings"
)

// addressPattern is a practical approximation of a plausible email address:
// letters, digits and ._%+- in the local part, letters, digits and .- in the
// domain, and a final label of at least two letters. Deliberately not RFC
// 5321: no quoted-string local parts, no Unicode/IDN.
var addressPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidSyntax reports whether the specified address is a syntactically
// plausible email address. Pure pattern matching, no I/O.
func ValidSyntax(address string) bool {
	return addressPattern.MatchString(address)
}

// Domain returns the lowercased domain part of an address, that is,
// everything after the last "@". It returns "" if there is no "@" at all.
func Domain(address string) string {
	at := strings.LastIndex(address, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(address[at+1:]))
}
