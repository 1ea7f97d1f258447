// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
)

var _ = Describe("spinner", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	It("cycles through all phases and then wraps around", func() {
		s := newSpinner()
		first := s.Spinner()
		seen := map[string]bool{first: true}
		for i := 1; i < len(spinnerPhases); i++ {
			s.advance()
			seen[s.Spinner()] = true
		}
		Expect(seen).To(HaveLen(len(spinnerPhases)))
		s.advance()
		Expect(s.Spinner()).To(Equal(first))
	})

	It("spins in the background until stopped", func() {
		s := newSpinner()
		first := s.Spinner()
		s.Start(time.Millisecond)
		defer s.Stop()
		Eventually(s.Spinner).Should(Not(Equal(first)))
	})

})
