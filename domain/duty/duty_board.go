package duty

import (
	"time"

	"dutyroster/domain"
	"dutyroster/domain/rotation"
	"dutyroster/persistence"
	"dutyroster/session"

	"github.com/fundwit/go-commons/types"
)

var (
	LoadWeekBoardFunc = LoadWeekBoard
)

type BoardPlace struct {
	Place  domain.Place   `json:"place"`
	Member *domain.Member `json:"member"`
}

type BoardSection struct {
	GroupID   *types.ID `json:"groupId"`
	GroupName string    `json:"groupName"`

	Places            []BoardPlace    `json:"places"`
	UnassignedMembers []domain.Member `json:"unassignedMembers"`
}

type WeekBoard struct {
	WeekStart types.Timestamp `json:"weekStart"`
	Sections  []BoardSection  `json:"sections"`
}

// the section holding members and places without a group
const ungroupedSectionName = "ungrouped"

// LoadWeekBoard returns the duty board for the week containing now. It
// auto-rotates the week first, so loading the board on a fresh week
// bootstraps its assignments from the previous week.
func LoadWeekBoard(now time.Time, s *session.Session) (*WeekBoard, error) {
	weekStart := rotation.WeekStartOf(now)
	if err := rotation.AutoRotateIfNeededFunc(weekStart, s); err != nil {
		return nil, err
	}

	db := persistence.ActiveDataSourceManager.GormDB(s.Context)

	week, err := rotation.FindWeekByStart(db, weekStart)
	if err != nil {
		return nil, err
	}
	assignments := []domain.Assignment{}
	if week != nil {
		if err := db.Where("week_id = ?", week.ID).Find(&assignments).Error; err != nil {
			return nil, err
		}
	}

	groups := []domain.Group{}
	if err := db.Order("id ASC").Find(&groups).Error; err != nil {
		return nil, err
	}
	members := []domain.Member{}
	if err := db.Order("id ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	places := []domain.Place{}
	if err := db.Order("id ASC").Find(&places).Error; err != nil {
		return nil, err
	}

	memberById := map[types.ID]domain.Member{}
	for _, m := range members {
		memberById[m.ID] = m
	}
	assignmentByPlace := map[types.ID]domain.Assignment{}
	for _, a := range assignments {
		assignmentByPlace[a.PlaceID] = a
	}

	boardPlaces := make([]BoardPlace, 0, len(places))
	assignedMembers := map[types.ID]bool{}
	for _, p := range places {
		bp := BoardPlace{Place: p}
		if a, found := assignmentByPlace[p.ID]; found {
			if m, exists := memberById[a.MemberID]; exists {
				member := m
				bp.Member = &member
				assignedMembers[m.ID] = true
			}
		}
		boardPlaces = append(boardPlaces, bp)
	}

	sections := make([]BoardSection, 0, len(groups)+1)
	for _, g := range groups {
		groupId := g.ID
		sections = append(sections, buildSection(&groupId, g.Name, boardPlaces, members, assignedMembers))
	}
	sections = append(sections, buildSection(nil, ungroupedSectionName, boardPlaces, members, assignedMembers))

	board := WeekBoard{Sections: sections}
	ws := weekStart
	board.WeekStart = types.TimestampOfDate(ws.Year(), ws.Month(), ws.Day(), 0, 0, 0, 0, time.UTC)
	return &board, nil
}

func buildSection(groupId *types.ID, name string, boardPlaces []BoardPlace,
	members []domain.Member, assignedMembers map[types.ID]bool) BoardSection {

	section := BoardSection{GroupID: groupId, GroupName: name,
		Places: []BoardPlace{}, UnassignedMembers: []domain.Member{}}
	for _, bp := range boardPlaces {
		if sameGroup(bp.Place.GroupID, groupId) {
			section.Places = append(section.Places, bp)
		}
	}
	for _, m := range members {
		if !assignedMembers[m.ID] && sameGroup(m.GroupID, groupId) {
			section.UnassignedMembers = append(section.UnassignedMembers, m)
		}
	}
	return section
}

func sameGroup(a, b *types.ID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
