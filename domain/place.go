package domain

import (
	"github.com/fundwit/go-commons/types"
)

// Place is a duty location. Same grouping rule as Member.
type Place struct {
	ID      types.ID  `json:"id" gorm:"primary_key"`
	Name    string    `json:"name"`
	GroupID *types.ID `json:"groupId" gorm:"index:idx_place_group"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (r *Place) TableName() string {
	return "places"
}

type PlaceCreation struct {
	Name    string    `json:"name" binding:"required,lte=64"`
	GroupID *types.ID `json:"groupId"`
}

type PlaceUpdating struct {
	Name string `json:"name" binding:"required,lte=64"`
}

type PlaceGroupUpdating struct {
	GroupID *types.ID `json:"groupId"`
}
