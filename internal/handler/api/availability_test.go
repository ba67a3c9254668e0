//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/handler/api"
	resdto "appointment-engine/internal/handler/dto/response"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/usecase/queries"
	"appointment-engine/tests/common/httptest"
	queriesmock "appointment-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockQ    *queriesmock.MockAvailabilityQueries
	ownerID  uuid.UUID
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.ownerID = uuid.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockQ = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)

	h := api.NewAvailabilityHandler(s.mockQ)
	s.router.GET("/availability", withOwner(s.ownerID), h.Check)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func availabilityURL(params map[string]string) string {
	v := url.Values{}
	for k, p := range params {
		v.Set(k, p)
	}
	return "/availability?" + v.Encode()
}

func (s *AvailabilityHandlerTestSuite) TestCheck() {
	from := time.Date(2030, 3, 4, 9, 0, 0, 0, time.UTC)

	s.Run("success: offsets are normalized to UTC", func() {
		s.mockQ.EXPECT().Check(gomock.Any(), s.ownerID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, req queries.AvailabilityRequest) (*queries.AvailabilityResult, error) {
				s.True(req.Range.Start().Equal(from))
				s.Equal(time.UTC, req.Range.Start().Location())
				s.Equal(2*time.Hour, req.Range.Duration())
				s.Equal(45*time.Minute, req.Duration)
				s.True(req.AvailableOnly)
				s.Equal(3, req.Limit)
				return &queries.AvailabilityResult{
					OwnerID:      s.ownerID,
					Timezone:     "UTC",
					SlotDuration: 45 * time.Minute,
					Slots: []schedule.AvailabilitySlot{
						{Interval: appointment.MustInterval(from, from.Add(45*time.Minute)), Available: true},
					},
					TotalSlots:     2,
					AvailableCount: 1,
				}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, availabilityURL(map[string]string{
			"from":           "2030-03-04T18:00:00+09:00",
			"to":             "2030-03-04T11:00:00Z",
			"duration":       "45",
			"available_only": "true",
			"limit":          "3",
		}), nil, "")

		var res resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(45, res.SlotDurationMinutes)
		s.Equal(1, res.AvailableSlots)
		s.Require().Len(res.Slots, 1)
		s.Empty(res.Slots[0].Reason)
	})

	s.Run("success: unavailable slots carry a reason", func() {
		s.mockQ.EXPECT().Check(gomock.Any(), s.ownerID, gomock.Any()).
			Return(&queries.AvailabilityResult{
				OwnerID:      s.ownerID,
				Timezone:     "UTC",
				SlotDuration: time.Hour,
				Slots: []schedule.AvailabilitySlot{
					{Interval: appointment.MustInterval(from, from.Add(time.Hour)), Reason: schedule.ReasonBooked},
				},
				TotalSlots: 1,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, availabilityURL(map[string]string{
			"from": "2030-03-04T09:00:00Z",
			"to":   "2030-03-04T10:00:00Z",
		}), nil, "")

		var res resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.False(res.Slots[0].IsAvailable)
		s.Equal("booked", res.Slots[0].Reason)
	})

	tests := []struct {
		name   string
		params map[string]string
		msg    string
	}{
		{"missing to", map[string]string{"from": "2030-03-04T09:00:00Z"}, "Invalid time range"},
		{"naive timestamp", map[string]string{"from": "2030-03-04T09:00:00", "to": "2030-03-04T10:00:00Z"}, "Invalid time range"},
		{"empty range", map[string]string{"from": "2030-03-04T09:00:00Z", "to": "2030-03-04T09:00:00Z"}, "Invalid time range"},
		{"reversed range", map[string]string{"from": "2030-03-04T10:00:00Z", "to": "2030-03-04T09:00:00Z"}, "Invalid time range"},
		{"bad duration", map[string]string{"from": "2030-03-04T09:00:00Z", "to": "2030-03-04T10:00:00Z", "duration": "x"}, "Invalid duration"},
		{"negative duration", map[string]string{"from": "2030-03-04T09:00:00Z", "to": "2030-03-04T10:00:00Z", "duration": "-5"}, "Invalid duration"},
		{"duration over a day", map[string]string{"from": "2030-03-04T09:00:00Z", "to": "2030-03-04T10:00:00Z", "duration": "1441"}, "Invalid duration"},
		{"duration overflowing nanoseconds", map[string]string{"from": "2030-03-04T09:00:00Z", "to": "2030-03-04T10:00:00Z", "duration": "3749353613647811"}, "Invalid duration"},
	}
	for _, tt := range tests {
		s.Run("error: "+tt.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, availabilityURL(tt.params), nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, tt.msg)
		})
	}

	s.Run("error: owner not found", func() {
		s.mockQ.EXPECT().Check(gomock.Any(), s.ownerID, gomock.Any()).Return(nil, errs.ErrOwnerNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, availabilityURL(map[string]string{
			"from": "2030-03-04T09:00:00Z",
			"to":   "2030-03-04T10:00:00Z",
		}), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Owner not found")
	})
}
