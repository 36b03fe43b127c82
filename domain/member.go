package domain

import (
	"github.com/fundwit/go-commons/types"
)

// Member is a person in the rotation pool. A member belongs to at most
// one group; GroupID == nil means the ungrouped pool.
type Member struct {
	ID      types.ID  `json:"id" gorm:"primary_key"`
	Name    string    `json:"name"`
	GroupID *types.ID `json:"groupId" gorm:"index:idx_member_group"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (r *Member) TableName() string {
	return "members"
}

type MemberCreation struct {
	Name    string    `json:"name" binding:"required,lte=64"`
	GroupID *types.ID `json:"groupId"`
}

type MemberUpdating struct {
	Name string `json:"name" binding:"required,lte=64"`
}

type MemberGroupUpdating struct {
	GroupID *types.ID `json:"groupId"`
}
