package duty_test

import (
	"testing"
	"time"

	"dutyroster/domain/duty"
	"dutyroster/domain/rotation"
	"dutyroster/testinfra"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func TestLoadHistory(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	weekStart := rotation.WeekStartOf(now)
	prevStart := weekStart.AddDate(0, 0, -7)

	t.Run("should return weeks newest first with resolved names", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		buildMember(10, "alice", nil)
		buildMember(20, "bob", nil)
		buildPlace(1, "hallway", nil)
		buildPlace(2, "stairs", nil)

		buildWeek(800, prevStart)
		buildAssignment(801, 800, 1, 10)
		buildAssignment(802, 800, 2, 20)
		buildWeek(900, weekStart)
		buildAssignment(901, 900, 2, 10)
		buildAssignment(902, 900, 1, 20)

		weeks, err := duty.LoadHistory(testinfra.AnonymousSession())
		Expect(err).To(BeNil())
		Expect(len(weeks)).To(Equal(2))

		Expect(weeks[0].ID).To(Equal(types.ID(900)))
		Expect(weeks[0].Assignments).To(Equal([]duty.HistoryAssignment{
			{ID: 902, PlaceID: 1, MemberID: 20, PlaceName: "hallway", MemberName: "bob"},
			{ID: 901, PlaceID: 2, MemberID: 10, PlaceName: "stairs", MemberName: "alice"},
		}))
		Expect(weeks[1].ID).To(Equal(types.ID(800)))
		Expect(len(weeks[1].Assignments)).To(Equal(2))
	})

	t.Run("should keep rows of deleted members with an empty name", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		buildPlace(1, "hallway", nil)
		buildWeek(900, weekStart)
		buildAssignment(901, 900, 1, 99)

		weeks, err := duty.LoadHistory(testinfra.AnonymousSession())
		Expect(err).To(BeNil())
		Expect(len(weeks)).To(Equal(1))
		Expect(weeks[0].Assignments).To(Equal([]duty.HistoryAssignment{
			{ID: 901, PlaceID: 1, MemberID: 99, PlaceName: "hallway", MemberName: ""},
		}))
	})

	t.Run("should render a computed week without assignments as empty", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		buildWeek(900, weekStart)

		weeks, err := duty.LoadHistory(testinfra.AnonymousSession())
		Expect(err).To(BeNil())
		Expect(len(weeks)).To(Equal(1))
		Expect(weeks[0].Assignments).To(Equal([]duty.HistoryAssignment{}))
	})
}

func TestLoadCountMatrix(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	weekStart := rotation.WeekStartOf(now)
	prevStart := weekStart.AddDate(0, 0, -7)

	t.Run("should tally assignments per member and place", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		buildMember(10, "alice", nil)
		buildMember(20, "bob", nil)
		buildPlace(1, "hallway", nil)
		buildPlace(2, "stairs", nil)

		buildWeek(800, prevStart)
		buildAssignment(801, 800, 1, 10)
		buildAssignment(802, 800, 2, 20)
		buildWeek(900, weekStart)
		buildAssignment(901, 900, 1, 10)
		buildAssignment(902, 900, 2, 10)

		matrix, err := duty.LoadCountMatrix(testinfra.AnonymousSession())
		Expect(err).To(BeNil())
		Expect(matrix.Members).To(Equal([]string{"alice", "bob"}))
		Expect(matrix.Places).To(Equal([]string{"hallway", "stairs"}))
		Expect(matrix.Matrix).To(Equal(map[string]map[string]int{
			"alice": {"hallway": 2, "stairs": 1},
			"bob":   {"stairs": 1},
		}))
	})

	t.Run("should leave out rows of deleted members or places", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		buildMember(10, "alice", nil)
		buildPlace(1, "hallway", nil)

		buildWeek(900, weekStart)
		buildAssignment(901, 900, 1, 10)
		buildAssignment(902, 900, 2, 10) // place 2 deleted since
		buildAssignment(903, 900, 3, 99) // both gone

		matrix, err := duty.LoadCountMatrix(testinfra.AnonymousSession())
		Expect(err).To(BeNil())
		Expect(matrix.Members).To(Equal([]string{"alice"}))
		Expect(matrix.Places).To(Equal([]string{"hallway"}))
		Expect(matrix.Matrix).To(Equal(map[string]map[string]int{"alice": {"hallway": 1}}))
	})

	t.Run("should return empty axes without any assignments", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		matrix, err := duty.LoadCountMatrix(testinfra.AnonymousSession())
		Expect(err).To(BeNil())
		Expect(matrix.Members).To(Equal([]string{}))
		Expect(matrix.Places).To(Equal([]string{}))
		Expect(matrix.Matrix).To(Equal(map[string]map[string]int{}))
	})
}
