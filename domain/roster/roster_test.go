package roster_test

import (
	"context"
	"testing"
	"time"

	"dutyroster/domain"
	"dutyroster/domain/rotation"
	"dutyroster/event"
	"dutyroster/persistence"
	"dutyroster/session"
	"dutyroster/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	. "github.com/onsi/gomega"
)

var (
	savedEvents     []event.EventRecord
	regenerateCalls int
)

func setup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartMysqlTestDatabase("dutyroster")
	*testDatabase = db
	Expect(db.DS.GormDB(context.Background()).AutoMigrate(&domain.Group{}, &domain.Member{}, &domain.Place{},
		&domain.Week{}, &domain.Assignment{}).Error).To(BeNil())
	persistence.ActiveDataSourceManager = db.DS

	savedEvents = []event.EventRecord{}
	event.EventPersistCreateFunc = func(record *event.EventRecord, db *gorm.DB) error {
		savedEvents = append(savedEvents, *record)
		return nil
	}
	event.InvokeHandlersFunc = func(record *event.EventRecord) []event.EventHandleResult {
		return nil
	}

	regenerateCalls = 0
	rotation.RegenerateWeekFunc = func(now time.Time, s *session.Session) error {
		regenerateCalls++
		return nil
	}
}

func teardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	rotation.RegenerateWeekFunc = rotation.RegenerateWeek
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func buildGroup(id types.ID, name string) {
	db := persistence.ActiveDataSourceManager.GormDB(context.Background())
	Expect(db.Create(&domain.Group{ID: id, Name: name, CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
}

func buildMember(id types.ID, name string, groupId *types.ID) {
	db := persistence.ActiveDataSourceManager.GormDB(context.Background())
	Expect(db.Create(&domain.Member{ID: id, Name: name, GroupID: groupId,
		CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
}

func buildPlace(id types.ID, name string, groupId *types.ID) {
	db := persistence.ActiveDataSourceManager.GormDB(context.Background())
	Expect(db.Create(&domain.Place{ID: id, Name: name, GroupID: groupId,
		CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
}

// buildCurrentWeek seeds the week row of now with one assignment.
func buildCurrentWeek(now time.Time, weekId, placeId, memberId types.ID) {
	db := persistence.ActiveDataSourceManager.GormDB(context.Background())
	ws := rotation.WeekStartOf(now)
	Expect(db.Create(&domain.Week{ID: weekId,
		StartDate: types.TimestampOfDate(ws.Year(), ws.Month(), ws.Day(), 0, 0, 0, 0, time.UTC)}).Error).To(BeNil())
	Expect(db.Create(&domain.Assignment{ID: weekId + 1, WeekID: weekId,
		PlaceID: placeId, MemberID: memberId}).Error).To(BeNil())
}
