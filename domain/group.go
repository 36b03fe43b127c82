package domain

import (
	"github.com/fundwit/go-commons/types"
)

type Group struct {
	ID   types.ID `json:"id" gorm:"primary_key"`
	Name string   `json:"name"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (r *Group) TableName() string {
	return "groups"
}

type GroupCreation struct {
	Name string `json:"name" binding:"required,lte=64"`
}
