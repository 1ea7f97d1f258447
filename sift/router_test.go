// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package sift

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"time"

	"github.com/siemens/mxsift/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
)

var _ = Describe("good/bad stream router", func() {

	It("writes the augmented header exactly once to both destinations", func() {
		var good, bad bytes.Buffer
		router := NewRouter(&good, &bad)

		Expect(router.WriteHeader([]string{"Name", "Email"})).To(Succeed())
		Expect(router.WriteHeader([]string{"Name", "Email"})).To(Succeed())

		want := "Name,Email,Invalid Email,syntax_ok,mx_ok,status\n"
		Expect(good.String()).To(Equal(want))
		Expect(bad.String()).To(Equal(want))
	})

	It("routes by status and flushes row by row", func(ctx context.Context) {
		good := gbytes.NewBuffer()
		bad := gbytes.NewBuffer()
		var seen []types.Status
		router := NewRouter(good, bad,
			WithObserver(func(verdict types.CheckedRecord) {
				seen = append(seen, verdict.Status)
			}))
		Expect(router.WriteHeader([]string{"Name", "Email"})).To(Succeed())

		news := make(chan types.CheckedRecord)
		done := make(chan error, 1)
		go func() {
			defer GinkgoRecover()
			done <- router.Route(ctx, news)
		}()

		news <- types.CheckedRecord{
			Record:   types.Record{Position: 1, Fields: []string{"Alice", "alice@gmail.com"}},
			SyntaxOK: true,
			MXOK:     true,
			Status:   types.Valid,
		}
		// each routed row must become visible before the stream ends.
		Eventually(good).WithTimeout(2 * time.Second).Should(
			gbytes.Say(`Alice,alice@gmail\.com,,true,true,Valid\n`))

		news <- types.CheckedRecord{
			Record:       types.Record{Position: 2, Fields: []string{"Bob", "not-an-email"}},
			InvalidEmail: "not-an-email",
			Status:       types.InvalidSyntax,
		}
		close(news)
		Eventually(done).Should(Receive(BeNil()))

		Expect(string(bad.Contents())).To(
			ContainSubstring("Bob,not-an-email,not-an-email,false,false,Invalid Syntax\n"))
		Expect(router.GoodCount()).To(Equal(1))
		Expect(router.BadCount()).To(Equal(1))
		Expect(seen).To(ConsistOf(types.Valid, types.InvalidSyntax))
	})

	It("renders fault kinds into the status column", func(ctx context.Context) {
		var good, bad bytes.Buffer
		router := NewRouter(&good, &bad)

		news := make(chan types.CheckedRecord, 1)
		news <- types.CheckedRecord{
			Record: types.Record{Position: 1, Fault: types.FaultPanic},
			Status: types.Faulted,
		}
		close(news)
		Expect(router.Route(ctx, news)).To(Succeed())

		records, err := csv.NewReader(strings.NewReader(bad.String())).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(1))
		Expect(records[0]).To(HaveExactElements("", "false", "false", "Error: panic"))
	})

	It("labels undecided verdicts instead of misfiling them", func(ctx context.Context) {
		var good, bad bytes.Buffer
		router := NewRouter(&good, &bad)

		news := make(chan types.CheckedRecord, 1)
		news <- types.CheckedRecord{
			Record: types.Record{Position: 1, Fields: []string{"Eve", "eve@example.com"}},
		}
		close(news)
		Expect(router.Route(ctx, news)).To(Succeed())

		Expect(good.String()).To(BeEmpty())
		records, err := csv.NewReader(strings.NewReader(bad.String())).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(1))
		Expect(records[0]).To(HaveExactElements(
			"Eve", "eve@example.com", "", "false", "false", "Error: collect"))
	})

})
