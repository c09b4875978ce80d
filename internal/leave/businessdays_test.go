package leave_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hrcore/employee-management/internal/leave"
)

var _ = Describe("BusinessDays", func() {
	day := func(d int) time.Time {
		// June 2025: the 2nd is a Monday.
		return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
	}

	It("counts an inclusive Monday to Friday week as 5 days", func() {
		Expect(leave.BusinessDays(day(2), day(6))).To(Equal(5))
	})

	It("counts Monday to Wednesday as 3 days", func() {
		Expect(leave.BusinessDays(day(2), day(4))).To(Equal(3))
	})

	It("counts a single weekday as 1 day", func() {
		Expect(leave.BusinessDays(day(3), day(3))).To(Equal(1))
	})

	It("excludes the weekend when the range spans one", func() {
		// Monday through the following Monday: 6 weekdays
		Expect(leave.BusinessDays(day(2), day(9))).To(Equal(6))
	})

	It("counts two full weeks as 10 days", func() {
		Expect(leave.BusinessDays(day(2), day(13))).To(Equal(10))
	})

	It("returns 0 for a weekend-only range", func() {
		Expect(leave.BusinessDays(day(7), day(8))).To(Equal(0))
	})

	It("returns 0 for a single Saturday", func() {
		Expect(leave.BusinessDays(day(7), day(7))).To(Equal(0))
	})

	It("returns 0 when the range ends before it starts", func() {
		Expect(leave.BusinessDays(day(6), day(2))).To(Equal(0))
	})

	It("ignores the time of day on the bounds", func() {
		start := time.Date(2025, 6, 2, 23, 30, 0, 0, time.UTC)
		end := time.Date(2025, 6, 4, 0, 15, 0, 0, time.UTC)
		Expect(leave.BusinessDays(start, end)).To(Equal(3))
	})
})
