package rotation_test

import (
	"time"

	"dutyroster/domain/rotation"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("WeekStartOf", func() {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	It("should resolve every day of the week to its Monday", func() {
		for day := 0; day < 7; day++ {
			Expect(rotation.WeekStartOf(monday.AddDate(0, 0, day))).To(Equal(monday))
		}
	})

	It("should keep a Monday midnight as is", func() {
		Expect(rotation.WeekStartOf(monday)).To(Equal(monday))
	})

	It("should resolve a Sunday to the Monday six days before", func() {
		sunday := time.Date(2024, 1, 7, 23, 59, 59, 0, time.UTC)
		Expect(rotation.WeekStartOf(sunday)).To(Equal(monday))
	})

	It("should normalize the instant to UTC before resolving", func() {
		// Monday 00:30 CET is still Sunday in UTC
		cet := time.FixedZone("CET", 3600)
		mondayEarlyCET := time.Date(2024, 1, 8, 0, 30, 0, 0, cet)
		Expect(rotation.WeekStartOf(mondayEarlyCET)).To(Equal(monday))
	})

	It("should handle month and year boundaries", func() {
		// 2023-12-31 is a Sunday, its week starts 2023-12-25
		Expect(rotation.WeekStartOf(time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC))).
			To(Equal(time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)))
		// 2024-01-01 opens a fresh week
		Expect(rotation.WeekStartOf(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))).To(Equal(monday))
	})
})
