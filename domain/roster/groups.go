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
	groupIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateGroupFunc = CreateGroup
	ListGroupsFunc  = ListGroups
	DeleteGroupFunc = DeleteGroup
)

func CreateGroup(req domain.GroupCreation, s *session.Session) (*domain.Group, error) {
	var r *domain.Group
	var ev *event.EventRecord
	txErr := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		g := domain.Group{
			ID:         idgen.NextID(groupIdWorker),
			Name:       req.Name,
			CreateTime: types.CurrentTimestamp(),
		}
		if err := tx.Create(&g).Error; err != nil {
			return err
		}
		r = &g

		var err error
		ev, err = event.CreateEvent(event.SourceTypeGroup, g.ID, g.Name, event.EventCategoryCreated,
			nil, nil, sessionIdentity(s), g.CreateTime, tx)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return r, nil
}

func ListGroups(s *session.Session) ([]domain.Group, error) {
	groups := []domain.Group{}
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)
	if err := db.Order("id ASC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// DeleteGroup removes a group. Its members and places are not deleted:
// their groupId is set to null in the same transaction, folding them into
// the ungrouped pool. The current week is regenerated afterwards since
// unit membership changed.
func DeleteGroup(id types.ID, now time.Time, s *session.Session) error {
	var ev *event.EventRecord
	found := false
	txErr := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		g := domain.Group{}
		if err := tx.Where("id = ?", id).First(&g).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		found = true

		if err := tx.Model(&domain.Member{}).Where("group_id = ?", id).
			Update("group_id", gorm.Expr("NULL")).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Place{}).Where("group_id = ?", id).
			Update("group_id", gorm.Expr("NULL")).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Group{}, "id = ?", id).Error; err != nil {
			return err
		}

		var err error
		ev, err = event.CreateEvent(event.SourceTypeGroup, g.ID, g.Name, event.EventCategoryDeleted,
			nil, nil, sessionIdentity(s), types.CurrentTimestamp(), tx)
		return err
	})
	if txErr != nil {
		return txErr
	}

	if event.InvokeHandlersFunc != nil && ev != nil {
		event.InvokeHandlersFunc(ev)
	}

	if found {
		return rotation.RegenerateWeekFunc(now, s)
	}
	return nil
}
