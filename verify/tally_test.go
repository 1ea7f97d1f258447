// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verify

import (
	"github.com/siemens/mxsift/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("verdict tally", func() {

	It("counts verdicts per status", func() {
		tally := NewTally()
		for _, status := range []types.Status{
			types.Valid, types.Valid, types.InvalidSyntax, types.MissingEmail,
		} {
			tally.Update(types.CheckedRecord{Status: status})
		}
		Expect(tally.Count(types.Valid)).To(Equal(2))
		Expect(tally.Count(types.InvalidSyntax)).To(Equal(1))
		Expect(tally.Count(types.InvalidDomain)).To(BeZero())
		Expect(tally.Total()).To(Equal(4))

		counts := tally.Snapshot()
		tally.Update(types.CheckedRecord{Status: types.Valid})
		Expect(counts[types.Valid]).To(Equal(2), "snapshot isn't a copy")
	})

})
