package duty

import (
	"sort"

	"dutyroster/domain"
	"dutyroster/persistence"
	"dutyroster/session"

	"github.com/fundwit/go-commons/types"
)

var (
	LoadHistoryFunc     = LoadHistory
	LoadCountMatrixFunc = LoadCountMatrix
)

type HistoryAssignment struct {
	ID       types.ID `json:"id"`
	PlaceID  types.ID `json:"placeId"`
	MemberID types.ID `json:"memberId"`

	PlaceName  string `json:"placeName"`
	MemberName string `json:"memberName"`
}

type HistoryWeek struct {
	ID          types.ID            `json:"id"`
	StartDate   types.Timestamp     `json:"startDate"`
	Assignments []HistoryAssignment `json:"assignments"`
}

// CountMatrix is the all-time member x place tally. Axes are name-sorted;
// missing cells mean zero.
type CountMatrix struct {
	Members []string                  `json:"members"`
	Places  []string                  `json:"places"`
	Matrix  map[string]map[string]int `json:"matrix"`
}

// LoadHistory returns every computed week, newest first, with its
// assignments in place-id order. Names of since-deleted members or places
// come back empty.
func LoadHistory(s *session.Session) ([]HistoryWeek, error) {
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)

	weeks := []domain.Week{}
	if err := db.Order("start_date DESC").Find(&weeks).Error; err != nil {
		return nil, err
	}
	assignments := []domain.Assignment{}
	if err := db.Order("place_id ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	memberNames, placeNames, err := loadNameIndex(s)
	if err != nil {
		return nil, err
	}

	byWeek := map[types.ID][]HistoryAssignment{}
	for _, a := range assignments {
		byWeek[a.WeekID] = append(byWeek[a.WeekID], HistoryAssignment{
			ID: a.ID, PlaceID: a.PlaceID, MemberID: a.MemberID,
			PlaceName: placeNames[a.PlaceID], MemberName: memberNames[a.MemberID],
		})
	}

	result := make([]HistoryWeek, 0, len(weeks))
	for _, w := range weeks {
		rows := byWeek[w.ID]
		if rows == nil {
			rows = []HistoryAssignment{}
		}
		result = append(result, HistoryWeek{ID: w.ID, StartDate: w.StartDate, Assignments: rows})
	}
	return result, nil
}

// LoadCountMatrix tallies all-time assignments per (member, place) pair.
// Rows referencing deleted members or places are left out: there is no
// name to put on the axis.
func LoadCountMatrix(s *session.Session) (*CountMatrix, error) {
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)

	assignments := []domain.Assignment{}
	if err := db.Find(&assignments).Error; err != nil {
		return nil, err
	}

	memberNames, placeNames, err := loadNameIndex(s)
	if err != nil {
		return nil, err
	}

	matrix := map[string]map[string]int{}
	memberSet := map[string]bool{}
	placeSet := map[string]bool{}
	for _, a := range assignments {
		memberName, foundMember := memberNames[a.MemberID]
		placeName, foundPlace := placeNames[a.PlaceID]
		if !foundMember || !foundPlace {
			continue
		}
		if matrix[memberName] == nil {
			matrix[memberName] = map[string]int{}
		}
		matrix[memberName][placeName]++
		memberSet[memberName] = true
		placeSet[placeName] = true
	}

	result := CountMatrix{Members: []string{}, Places: []string{}, Matrix: matrix}
	for name := range memberSet {
		result.Members = append(result.Members, name)
	}
	for name := range placeSet {
		result.Places = append(result.Places, name)
	}
	sort.Strings(result.Members)
	sort.Strings(result.Places)
	return &result, nil
}

func loadNameIndex(s *session.Session) (map[types.ID]string, map[types.ID]string, error) {
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)

	members := []domain.Member{}
	if err := db.Find(&members).Error; err != nil {
		return nil, nil, err
	}
	places := []domain.Place{}
	if err := db.Find(&places).Error; err != nil {
		return nil, nil, err
	}

	memberNames := map[types.ID]string{}
	for _, m := range members {
		memberNames[m.ID] = m.Name
	}
	placeNames := map[types.ID]string{}
	for _, p := range places {
		placeNames[p.ID] = p.Name
	}
	return memberNames, placeNames, nil
}
