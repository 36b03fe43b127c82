package rotation

import (
	"time"

	"dutyroster/domain"
	"dutyroster/event"
	"dutyroster/idgen"
	"dutyroster/persistence"
	"dutyroster/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	assignmentIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	RegenerateWeekFunc      = RegenerateWeek
	AdvanceWeekRotationFunc = AdvanceWeekRotation
	AutoRotateIfNeededFunc  = AutoRotateIfNeeded
)

// RegenerateWeek rebuilds the assignments of the week containing now from a
// fresh slate: every non-empty rotation unit is materialized at offset 0,
// place[i] -> member[i mod n] in native id order. Used after structural
// edits, when offset history is discarded.
func RegenerateWeek(now time.Time, s *session.Session) error {
	var ev *event.EventRecord
	txErr := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		week, err := upsertWeek(tx, WeekStartOf(now))
		if err != nil {
			return err
		}
		if err := tx.Delete(&domain.Assignment{}, "week_id = ?", week.ID).Error; err != nil {
			return err
		}

		units, err := loadRotationUnits(tx)
		if err != nil {
			return err
		}
		for _, unit := range units {
			if unit.Skippable() {
				continue
			}
			if err := materializeUnit(tx, week.ID, &unit, 0); err != nil {
				return err
			}
		}

		ev, err = createRotationEvent(tx, week, "regenerate", s)
		return err
	})
	if txErr != nil {
		return txErr
	}

	if event.InvokeHandlersFunc != nil && ev != nil {
		event.InvokeHandlersFunc(ev)
	}
	return nil
}

// AdvanceWeekRotation shifts this week's rotation by one step, per unit.
// The member one position before the current first member becomes first, so
// every place's member moves to the next one in sequence, wrapping around.
// Units without assignments yet are materialized at offset 0.
func AdvanceWeekRotation(now time.Time, s *session.Session) error {
	var ev *event.EventRecord
	txErr := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		week, err := upsertWeek(tx, WeekStartOf(now))
		if err != nil {
			return err
		}

		units, err := loadRotationUnits(tx)
		if err != nil {
			return err
		}
		for _, unit := range units {
			if unit.Skippable() {
				continue
			}

			existing, err := unitAssignments(tx, week.ID, &unit)
			if err != nil {
				return err
			}
			if len(existing) == 0 {
				if err := materializeUnit(tx, week.ID, &unit, 0); err != nil {
					return err
				}
				continue
			}

			firstIndex := 0
			for i, m := range unit.Members {
				if m.ID == existing[0].MemberID {
					firstIndex = i
					break
				}
			}
			n := len(unit.Members)
			startOffset := (firstIndex - 1 + n) % n

			if err := deleteUnitAssignments(tx, week.ID, &unit); err != nil {
				return err
			}
			if err := materializeUnit(tx, week.ID, &unit, startOffset); err != nil {
				return err
			}
		}

		ev, err = createRotationEvent(tx, week, "advance", s)
		return err
	})
	if txErr != nil {
		return txErr
	}

	if event.InvokeHandlersFunc != nil && ev != nil {
		event.InvokeHandlersFunc(ev)
	}
	return nil
}

// AutoRotateIfNeeded bootstraps the week starting at weekStart when it has
// no assignments yet. Each unit continues from the previous week: the member
// one roster position before the previously first-assigned member becomes
// first, so the whole roster steps forward by one, wrapping around. Units
// without a previous week start at offset 0. A week that already has
// assignments is left alone, so calls on every page load stay cheap and safe.
//
// Unlike AdvanceWeekRotation this reads the previous week's assignments, not
// the current week's. Previous assignments whose member is no longer on the
// unit's roster are skipped; a unit with no surviving previous assignment
// starts at offset 0. No rotation event is recorded when nothing was
// materialized.
func AutoRotateIfNeeded(weekStart time.Time, s *session.Session) error {
	var ev *event.EventRecord
	txErr := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		week, err := FindWeekByStart(tx, weekStart)
		if err != nil {
			return err
		}
		if week != nil {
			count := 0
			if err := tx.Model(&domain.Assignment{}).Where("week_id = ?", week.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}
		}

		prevAssignments := []domain.Assignment{}
		prevWeek, err := FindWeekByStart(tx, weekStart.AddDate(0, 0, -7))
		if err != nil {
			return err
		}
		if prevWeek != nil {
			if err := tx.Where("week_id = ?", prevWeek.ID).Order("place_id ASC").Find(&prevAssignments).Error; err != nil {
				return err
			}
		}

		if week == nil {
			week, err = upsertWeek(tx, weekStart)
			if err != nil {
				return err
			}
		}

		units, err := loadRotationUnits(tx)
		if err != nil {
			return err
		}

		placeGroups := map[types.ID]*types.ID{}
		for i := range units {
			for _, p := range units[i].Places {
				placeGroups[p.ID] = units[i].GroupID
			}
		}

		materialized := 0
		for _, unit := range units {
			if unit.Skippable() {
				continue
			}

			startOffset := 0
			for _, a := range prevAssignments {
				groupId, known := placeGroups[a.PlaceID]
				if !known || !sameUnit(groupId, unit.GroupID) {
					continue
				}
				// the previously assigned member may be deleted by now, or
				// moved to another group; only this unit's own roster counts
				firstIndex := rosterIndex(unit.Members, a.MemberID)
				if firstIndex < 0 {
					continue
				}
				n := len(unit.Members)
				startOffset = (firstIndex - 1 + n) % n
				break
			}
			if err := materializeUnit(tx, week.ID, &unit, startOffset); err != nil {
				return err
			}
			materialized++
		}

		if materialized == 0 {
			return nil
		}
		ev, err = createRotationEvent(tx, week, "auto", s)
		return err
	})
	if txErr != nil {
		return txErr
	}

	if event.InvokeHandlersFunc != nil && ev != nil {
		event.InvokeHandlersFunc(ev)
	}
	return nil
}

// materializeUnit writes one assignment per place of the unit:
// place[i] -> members[(startOffset + i) mod n]. The caller must have
// cleared conflicting rows for this week and unit already, and must
// guarantee the unit has at least one member.
func materializeUnit(tx *gorm.DB, weekId types.ID, unit *RotationUnit, startOffset int) error {
	n := len(unit.Members)
	sequence := make([]types.ID, 0, n)
	for i := 0; i < n; i++ {
		sequence = append(sequence, unit.Members[(startOffset+i)%n].ID)
	}
	return materializeSequence(tx, weekId, unit.Places, sequence)
}

func materializeSequence(tx *gorm.DB, weekId types.ID, places []domain.Place, memberIds []types.ID) error {
	for i, place := range places {
		assignment := domain.Assignment{
			ID:       idgen.NextID(assignmentIdWorker),
			WeekID:   weekId,
			PlaceID:  place.ID,
			MemberID: memberIds[i%len(memberIds)],
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}
	}
	return nil
}

// unitAssignments loads this week's assignments of the unit's places,
// ordered by place id ascending.
func unitAssignments(tx *gorm.DB, weekId types.ID, unit *RotationUnit) ([]domain.Assignment, error) {
	if len(unit.Places) == 0 {
		return nil, nil
	}
	assignments := []domain.Assignment{}
	if err := tx.Where("week_id = ? AND place_id IN (?)", weekId, unitPlaceIds(unit)).
		Order("place_id ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func deleteUnitAssignments(tx *gorm.DB, weekId types.ID, unit *RotationUnit) error {
	if len(unit.Places) == 0 {
		return nil
	}
	return tx.Delete(&domain.Assignment{}, "week_id = ? AND place_id IN (?)", weekId, unitPlaceIds(unit)).Error
}

func unitPlaceIds(unit *RotationUnit) []types.ID {
	ids := make([]types.ID, 0, len(unit.Places))
	for _, p := range unit.Places {
		ids = append(ids, p.ID)
	}
	return ids
}

// rosterIndex returns the position of the member on the roster, -1 when the
// member is not on it.
func rosterIndex(members []domain.Member, memberId types.ID) int {
	for i, m := range members {
		if m.ID == memberId {
			return i
		}
	}
	return -1
}

func sameUnit(a, b *types.ID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func createRotationEvent(tx *gorm.DB, week *domain.Week, mode string, s *session.Session) (*event.EventRecord, error) {
	var identity *session.Identity
	if s != nil && s.Identity.ID != 0 {
		identity = &s.Identity
	}
	return event.CreateEvent(event.SourceTypeWeek, week.ID, week.StartDate.Time().Format("2006-01-02"),
		event.EventCategoryRotated,
		[]event.UpdatedProperty{{
			PropertyName: "Rotation", PropertyDesc: "Rotation",
			NewValue: mode, NewValueDesc: mode,
		}}, nil, identity, types.CurrentTimestamp(), tx)
}
