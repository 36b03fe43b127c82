package rotation

import (
	"time"

	"dutyroster/domain"
	"dutyroster/idgen"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var weekIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

// WeekStartOf returns the Monday 00:00 UTC instant of the week containing t.
// Weeks run Monday through Sunday.
func WeekStartOf(t time.Time) time.Time {
	day := t.UTC()
	daysBack := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		daysBack = 6
	}
	return time.Date(day.Year(), day.Month(), day.Day()-daysBack, 0, 0, 0, 0, time.UTC)
}

func weekStartTimestamp(weekStart time.Time) types.Timestamp {
	ws := weekStart.UTC()
	return types.TimestampOfDate(ws.Year(), ws.Month(), ws.Day(), 0, 0, 0, 0, time.UTC)
}

func FindWeekByStart(tx *gorm.DB, weekStart time.Time) (*domain.Week, error) {
	week := domain.Week{}
	err := tx.Where("start_date = ?", weekStartTimestamp(weekStart)).First(&week).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &week, nil
}

// upsertWeek returns the week row for weekStart, creating it when absent.
// weeks.start_date carries a unique index, so a concurrent create surfaces
// as a constraint error instead of a duplicate row.
func upsertWeek(tx *gorm.DB, weekStart time.Time) (*domain.Week, error) {
	week, err := FindWeekByStart(tx, weekStart)
	if err != nil {
		return nil, err
	}
	if week != nil {
		return week, nil
	}
	created := domain.Week{ID: idgen.NextID(weekIdWorker), StartDate: weekStartTimestamp(weekStart)}
	if err := tx.Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}
