package roster

import (
	"errors"
	"time"

	"dutyroster/domain"
	"dutyroster/domain/rotation"
	"dutyroster/event"
	"dutyroster/idgen"
	"dutyroster/persistence"
	"dutyroster/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	memberIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateMemberFunc      = CreateMember
	ListMembersFunc       = ListMembers
	UpdateMemberNameFunc  = UpdateMemberName
	UpdateMemberGroupFunc = UpdateMemberGroup
	DeleteMemberFunc      = DeleteMember
)

// CreateMember adds a member to the rotation pool and regenerates the
// current week, since unit membership changed.
func CreateMember(req domain.MemberCreation, now time.Time, s *session.Session) (*domain.Member, error) {
	var r *domain.Member
	var ev *event.EventRecord
	txErr := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		if err := checkGroupExists(tx, req.GroupID); err != nil {
			return err
		}
		m := domain.Member{
			ID:         idgen.NextID(memberIdWorker),
			Name:       req.Name,
			GroupID:    req.GroupID,
			CreateTime: types.CurrentTimestamp(),
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		r = &m

		var err error
		ev, err = event.CreateEvent(event.SourceTypeMember, m.ID, m.Name, event.EventCategoryCreated,
			nil, nil, sessionIdentity(s), m.CreateTime, tx)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}

	if err := rotation.RegenerateWeekFunc(now, s); err != nil {
		return nil, err
	}
	return r, nil
}

func ListMembers(s *session.Session) ([]domain.Member, error) {
	members := []domain.Member{}
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)
	if err := db.Order("id ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func UpdateMemberName(id types.ID, req domain.MemberUpdating, s *session.Session) error {
	var ev *event.EventRecord
	txErr := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		m := domain.Member{}
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Member{}).Where("id = ?", id).Update("name", req.Name).Error; err != nil {
			return err
		}

		var err error
		ev, err = event.CreateEvent(event.SourceTypeMember, m.ID, req.Name, event.EventCategoryPropertyUpdated,
			[]event.UpdatedProperty{{
				PropertyName: "Name", PropertyDesc: "Name",
				OldValue: m.Name, OldValueDesc: m.Name,
				NewValue: req.Name, NewValueDesc: req.Name,
			}}, nil, sessionIdentity(s), types.CurrentTimestamp(), tx)
		return err
	})
	if txErr != nil {
		return txErr
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return nil
}

// UpdateMemberGroup moves a member between rotation units and regenerates
// the current week.
func UpdateMemberGroup(id types.ID, req domain.MemberGroupUpdating, now time.Time, s *session.Session) error {
	var ev *event.EventRecord
	txErr := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		m := domain.Member{}
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		if err := checkGroupExists(tx, req.GroupID); err != nil {
			return err
		}
		if err := tx.Model(&domain.Member{}).Where("id = ?", id).Update("group_id", req.GroupID).Error; err != nil {
			return err
		}

		var err error
		ev, err = event.CreateEvent(event.SourceTypeMember, m.ID, m.Name, event.EventCategoryRelationUpdated,
			nil, []event.UpdatedRelation{{
				PropertyName: "Group", PropertyDesc: "Group",
				TargetType: event.SourceTypeGroup, TargetTypeDesc: event.SourceTypeGroup,
				OldTargetId: idString(m.GroupID), NewTargetId: idString(req.GroupID),
			}}, sessionIdentity(s), types.CurrentTimestamp(), tx)
		return err
	})
	if txErr != nil {
		return txErr
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}

	return rotation.RegenerateWeekFunc(now, s)
}

// DeleteMember removes a member. The current week is regenerated only when
// the member was assigned in it.
func DeleteMember(id types.ID, now time.Time, s *session.Session) error {
	var ev *event.EventRecord
	assigned := false
	txErr := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		m := domain.Member{}
		if err := tx.Where("id = ?", id).First(&m).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		} else if err != nil {
			return err
		}

		week, err := rotation.FindWeekByStart(tx, rotation.WeekStartOf(now))
		if err != nil {
			return err
		}
		if week != nil {
			count := 0
			if err := tx.Model(&domain.Assignment{}).Where("week_id = ? AND member_id = ?", week.ID, id).
				Count(&count).Error; err != nil {
				return err
			}
			assigned = count > 0
		}

		if err := tx.Delete(&domain.Member{}, "id = ?", id).Error; err != nil {
			return err
		}

		ev, err = event.CreateEvent(event.SourceTypeMember, m.ID, m.Name, event.EventCategoryDeleted,
			nil, nil, sessionIdentity(s), types.CurrentTimestamp(), tx)
		return err
	})
	if txErr != nil {
		return txErr
	}

	if event.InvokeHandlersFunc != nil && ev != nil {
		event.InvokeHandlersFunc(ev)
	}

	if assigned {
		return rotation.RegenerateWeekFunc(now, s)
	}
	return nil
}
