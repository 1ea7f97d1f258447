// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verify

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("address syntax", func() {

	It("accepts plausible addresses", func() {
		for _, address := range []string{
			"alice@gmail.com",
			"bob.smith@example.co.uk",
			"under_score%plus+minus-@sub.domain-x.org",
			"42@42.de",
		} {
			Expect(ValidSyntax(address)).To(BeTrue(), "address %q", address)
		}
	})

	It("rejects implausible addresses", func() {
		for _, address := range []string{
			"",
			"not-an-email",
			"@example.com",
			"alice@",
			"alice@example",
			"alice@example.c",
			"alice bob@example.com",
			"alice@exa mple.com",
			"quoted\"local\"@example.com",
		} {
			Expect(ValidSyntax(address)).To(BeFalse(), "address %q", address)
		}
	})

	It("extracts the lowercased domain after the last @", func() {
		Expect(Domain("Alice@Example.COM")).To(Equal("example.com"))
		Expect(Domain(`weird@middle@example.org`)).To(Equal("example.org"))
		Expect(Domain("no-at-sign")).To(BeEmpty())
	})

})
