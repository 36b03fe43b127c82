package rotation

import (
	"dutyroster/domain"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

// RotationUnit is the independent scope within which duty rotation happens:
// one group, or (GroupID == nil) the ungrouped pool. Units never share
// members or places.
type RotationUnit struct {
	GroupID   *types.ID
	GroupName string

	Members []domain.Member
	Places  []domain.Place
}

// Skippable reports whether the unit has nothing to rotate. Such a unit is
// kept in the partition list but produces no assignments.
func (u *RotationUnit) Skippable() bool {
	return len(u.Members) == 0 || len(u.Places) == 0
}

// loadRotationUnits produces one unit per group ordered by group id
// ascending, each with that group's members and places ordered by id
// ascending, plus a trailing ungrouped unit, even when empty.
func loadRotationUnits(tx *gorm.DB) ([]RotationUnit, error) {
	groups := []domain.Group{}
	if err := tx.Order("id ASC").Find(&groups).Error; err != nil {
		return nil, err
	}
	members := []domain.Member{}
	if err := tx.Order("id ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	places := []domain.Place{}
	if err := tx.Order("id ASC").Find(&places).Error; err != nil {
		return nil, err
	}

	units := make([]RotationUnit, 0, len(groups)+1)
	for _, g := range groups {
		groupId := g.ID
		unit := RotationUnit{GroupID: &groupId, GroupName: g.Name}
		for _, m := range members {
			if m.GroupID != nil && *m.GroupID == g.ID {
				unit.Members = append(unit.Members, m)
			}
		}
		for _, p := range places {
			if p.GroupID != nil && *p.GroupID == g.ID {
				unit.Places = append(unit.Places, p)
			}
		}
		units = append(units, unit)
	}

	ungrouped := RotationUnit{}
	for _, m := range members {
		if m.GroupID == nil {
			ungrouped.Members = append(ungrouped.Members, m)
		}
	}
	for _, p := range places {
		if p.GroupID == nil {
			ungrouped.Places = append(ungrouped.Places, p)
		}
	}
	units = append(units, ungrouped)

	return units, nil
}
