package domain

import (
	"github.com/fundwit/go-commons/types"
)

// Week identifies one calendar week by its Monday 00:00 start instant.
// A row is created lazily the first time assignments are computed for it.
type Week struct {
	ID        types.ID        `json:"id" gorm:"primary_key"`
	StartDate types.Timestamp `json:"startDate" gorm:"unique_index:uni_week_start" sql:"type:DATETIME(6) NOT NULL"`
}

func (r *Week) TableName() string {
	return "weeks"
}

// Assignment is the materialized duty mapping of one place for one week.
// History is append-only: rows of past weeks are never touched.
type Assignment struct {
	ID       types.ID `json:"id" gorm:"primary_key"`
	WeekID   types.ID `json:"weekId" gorm:"unique_index:uni_week_place"`
	PlaceID  types.ID `json:"placeId" gorm:"unique_index:uni_week_place"`
	MemberID types.ID `json:"memberId"`
}

func (r *Assignment) TableName() string {
	return "assignments"
}
