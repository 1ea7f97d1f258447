// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("output paths", func() {

	BeforeEach(func() {
		// (re)sets the CLI flags to their defaults.
		newRootCmd()
	})

	It("derives the output paths next to the input", func() {
		good, bad := outputPaths("lists/contacts.csv")
		Expect(good).To(Equal("lists/contacts_good.csv"))
		Expect(bad).To(Equal("lists/contacts_bad.csv"))
	})

	It("assumes CSV for extensionless inputs", func() {
		good, bad := outputPaths("contacts")
		Expect(good).To(Equal("contacts_good.csv"))
		Expect(bad).To(Equal("contacts_bad.csv"))
	})

	It("honors explicit output paths", func() {
		*goodPath = "keep.csv"
		*badPath = "toss.csv"
		good, bad := outputPaths("contacts.csv")
		Expect(good).To(Equal("keep.csv"))
		Expect(bad).To(Equal("toss.csv"))
	})

})
