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
	placeIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreatePlaceFunc      = CreatePlace
	ListPlacesFunc       = ListPlaces
	UpdatePlaceNameFunc  = UpdatePlaceName
	UpdatePlaceGroupFunc = UpdatePlaceGroup
	DeletePlaceFunc      = DeletePlace
)

// CreatePlace adds a duty location and regenerates the current week.
func CreatePlace(req domain.PlaceCreation, now time.Time, s *session.Session) (*domain.Place, error) {
	var r *domain.Place
	var ev *event.EventRecord
	txErr := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		if err := checkGroupExists(tx, req.GroupID); err != nil {
			return err
		}
		p := domain.Place{
			ID:         idgen.NextID(placeIdWorker),
			Name:       req.Name,
			GroupID:    req.GroupID,
			CreateTime: types.CurrentTimestamp(),
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		r = &p

		var err error
		ev, err = event.CreateEvent(event.SourceTypePlace, p.ID, p.Name, event.EventCategoryCreated,
			nil, nil, sessionIdentity(s), p.CreateTime, tx)
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

func ListPlaces(s *session.Session) ([]domain.Place, error) {
	places := []domain.Place{}
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)
	if err := db.Order("id ASC").Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

func UpdatePlaceName(id types.ID, req domain.PlaceUpdating, s *session.Session) error {
	var ev *event.EventRecord
	txErr := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		p := domain.Place{}
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Place{}).Where("id = ?", id).Update("name", req.Name).Error; err != nil {
			return err
		}

		var err error
		ev, err = event.CreateEvent(event.SourceTypePlace, p.ID, req.Name, event.EventCategoryPropertyUpdated,
			[]event.UpdatedProperty{{
				PropertyName: "Name", PropertyDesc: "Name",
				OldValue: p.Name, OldValueDesc: p.Name,
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

// UpdatePlaceGroup moves a place between rotation units and regenerates
// the current week.
func UpdatePlaceGroup(id types.ID, req domain.PlaceGroupUpdating, now time.Time, s *session.Session) error {
	var ev *event.EventRecord
	txErr := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		p := domain.Place{}
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		if err := checkGroupExists(tx, req.GroupID); err != nil {
			return err
		}
		if err := tx.Model(&domain.Place{}).Where("id = ?", id).Update("group_id", req.GroupID).Error; err != nil {
			return err
		}

		var err error
		ev, err = event.CreateEvent(event.SourceTypePlace, p.ID, p.Name, event.EventCategoryRelationUpdated,
			nil, []event.UpdatedRelation{{
				PropertyName: "Group", PropertyDesc: "Group",
				TargetType: event.SourceTypeGroup, TargetTypeDesc: event.SourceTypeGroup,
				OldTargetId: idString(p.GroupID), NewTargetId: idString(req.GroupID),
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

// DeletePlace removes a duty location. The current week is regenerated
// only when the place was assigned in it.
func DeletePlace(id types.ID, now time.Time, s *session.Session) error {
	var ev *event.EventRecord
	assigned := false
	txErr := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		p := domain.Place{}
		if err := tx.Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
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
			if err := tx.Model(&domain.Assignment{}).Where("week_id = ? AND place_id = ?", week.ID, id).
				Count(&count).Error; err != nil {
				return err
			}
			assigned = count > 0
		}

		if err := tx.Delete(&domain.Place{}, "id = ?", id).Error; err != nil {
			return err
		}

		ev, err = event.CreateEvent(event.SourceTypePlace, p.ID, p.Name, event.EventCategoryDeleted,
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
