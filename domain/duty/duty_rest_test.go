package duty_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dutyroster/bizerror"
	"dutyroster/domain/duty"
	"dutyroster/session"
	"dutyroster/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func TestWeekBoardAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	duty.RegisterDutyRestAPI(router)

	t.Run("should be able to handle error", func(t *testing.T) {
		duty.LoadWeekBoardFunc = func(now time.Time, s *session.Session) (*duty.WeekBoard, error) {
			return nil, errors.New("some error")
		}
		req := httptest.NewRequest(http.MethodGet, duty.PathDutyBoard, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusInternalServerError))
		Expect(body).To(MatchJSON(`{"code":"common.internal_server_error", "message":"some error", "data":null}`))
	})

	t.Run("should be able to load the board of the current week", func(t *testing.T) {
		weekStart := types.TimestampOfDate(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		timeBytes, err := weekStart.Time().MarshalJSON()
		Expect(err).To(BeNil())
		timeString := strings.Trim(string(timeBytes), `"`)

		duty.LoadWeekBoardFunc = func(now time.Time, s *session.Session) (*duty.WeekBoard, error) {
			Expect(time.Since(now) < time.Second).To(BeTrue())
			return &duty.WeekBoard{WeekStart: weekStart, Sections: []duty.BoardSection{
				{GroupName: "ungrouped", Places: []duty.BoardPlace{}, UnassignedMembers: nil},
			}}, nil
		}
		req := httptest.NewRequest(http.MethodGet, duty.PathDutyBoard, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"weekStart": "` + timeString + `", "sections": [
			{"groupId": null, "groupName": "ungrouped", "places": [], "unassignedMembers": null}]}`))
	})
}

func TestHistoryAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	duty.RegisterDutyRestAPI(router)

	t.Run("should be able to handle error", func(t *testing.T) {
		duty.LoadHistoryFunc = func(s *session.Session) ([]duty.HistoryWeek, error) {
			return nil, errors.New("some error")
		}
		req := httptest.NewRequest(http.MethodGet, duty.PathHistory, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusInternalServerError))
		Expect(body).To(MatchJSON(`{"code":"common.internal_server_error", "message":"some error", "data":null}`))
	})

	t.Run("should be able to load history", func(t *testing.T) {
		startDate := types.TimestampOfDate(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		timeBytes, err := startDate.Time().MarshalJSON()
		Expect(err).To(BeNil())
		timeString := strings.Trim(string(timeBytes), `"`)

		duty.LoadHistoryFunc = func(s *session.Session) ([]duty.HistoryWeek, error) {
			return []duty.HistoryWeek{{ID: 900, StartDate: startDate, Assignments: []duty.HistoryAssignment{
				{ID: 901, PlaceID: 1, MemberID: 10, PlaceName: "hallway", MemberName: "alice"},
			}}}, nil
		}
		req := httptest.NewRequest(http.MethodGet, duty.PathHistory, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`[{"id": "900", "startDate": "` + timeString + `", "assignments": [
			{"id": "901", "placeId": "1", "memberId": "10", "placeName": "hallway", "memberName": "alice"}]}]`))
	})

	t.Run("should be able to load the count matrix", func(t *testing.T) {
		duty.LoadCountMatrixFunc = func(s *session.Session) (*duty.CountMatrix, error) {
			return &duty.CountMatrix{Members: []string{"alice"}, Places: []string{"hallway"},
				Matrix: map[string]map[string]int{"alice": {"hallway": 2}}}, nil
		}
		req := httptest.NewRequest(http.MethodGet, duty.PathHistory+"/counts", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"members": ["alice"], "places": ["hallway"],
			"matrix": {"alice": {"hallway": 2}}}`))
	})
}
