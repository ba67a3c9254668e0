//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/handler/api"
	resdto "appointment-engine/internal/handler/dto/response"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/usecase/commands"
	"appointment-engine/internal/usecase/queries"
	"appointment-engine/tests/common/builder"
	"appointment-engine/tests/common/httptest"
	"appointment-engine/tests/common/testutil"
	commandsmock "appointment-engine/tests/mock/commands"
	queriesmock "appointment-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AppointmentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAppointmentCommands
	mockQueries  *queriesmock.MockAppointmentQueries
	ownerID      uuid.UUID
}

func (s *AppointmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.ownerID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAppointmentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAppointmentQueries(s.mockCtrl)
	h := api.NewAppointmentHandler(s.mockCommands, s.mockQueries)

	g := s.router.Group("", withOwner(s.ownerID))
	g.POST("/appointments", h.Book)
	g.GET("/appointments", h.List)
	g.GET("/appointments/:id", h.Get)
	g.POST("/appointments/:id/reschedule", h.Reschedule)
	g.POST("/appointments/:id/cancel", h.Cancel)
	g.POST("/appointments/:id/status", h.UpdateStatus)
}

func (s *AppointmentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAppointmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(AppointmentHandlerTestSuite))
}

// withOwner stands in for RequireAuth.
func withOwner(ownerID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("owner_id", ownerID)
		c.Next()
	}
}

type testCaseBook struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *AppointmentHandlerTestSuite) TestBook() {
	url := "/appointments"

	s.Run("success: returns 201 Created with the booked appointment", func() {
		b := builder.NewAppointmentBuilder().WithOwner(s.ownerID)
		booked := b.BuildDomain()

		s.mockCommands.EXPECT().Book(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.BookInput) (*commands.BookResult, error) {
				s.Equal(s.ownerID, in.OwnerID)
				s.True(in.Interval.Start().Equal(b.Start))
				s.True(in.SendReminders, "reminders default to on")
				s.Equal(appointment.SourceDashboard, in.Source)
				s.Equal("key-1", in.IdempotencyKey)
				return &commands.BookResult{Appointment: booked}, nil
			}).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, b.BuildRequestDTO(),
			map[string]string{api.IdempotencyKeyHeader: "key-1"})

		var res resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal(booked.ID(), res.ID)
		s.Equal(30, res.DurationMinutes)
		s.Equal("scheduled", res.Status)
		s.Empty(rec.Header().Get(api.ReplayedHeader))
	})

	s.Run("success: replay returns 200 with the replay header", func() {
		b := builder.NewAppointmentBuilder().WithOwner(s.ownerID)
		s.mockCommands.EXPECT().Book(gomock.Any(), gomock.Any()).
			Return(&commands.BookResult{Appointment: b.BuildDomain(), Replayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, b.BuildRequestDTO(),
			map[string]string{api.IdempotencyKeyHeader: "key-1"})

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{api.ReplayedHeader: "true"})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		dto := builder.NewAppointmentBuilder().BuildRequestDTO()
		cases := []testCaseBook{
			{name: "missing field: title", mutate: testutil.Field("title", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: attendee_name", mutate: testutil.Field("attendee_name", nil), expectCode: http.StatusBadRequest},
			{name: "invalid attendee_email", mutate: testutil.Field("attendee_email", "not-an-email"), expectCode: http.StatusBadRequest},
			{name: "timestamp without offset", mutate: testutil.Field("start_time", "2030-01-01T10:00:00"), expectCode: http.StatusBadRequest},
			{name: "malformed end_time", mutate: testutil.Field("end_time", "tomorrow"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), dto, tc.mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: end before start is rejected before the use case", func() {
		b := builder.NewAppointmentBuilder()
		dto := b.BuildRequestDTO()
		dto.EndTime = b.Start.Add(-time.Minute).Format(time.RFC3339)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, dto, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid time range")
	})

	s.Run("error: maps domain failures to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "slot taken", err: errs.ErrSlotUnavailable, expectCode: http.StatusConflict},
			{name: "key reused", err: errs.ErrIdempotencyKeyReused, expectCode: http.StatusUnprocessableEntity},
			{name: "key in flight", err: errs.ErrIdempotencyInProgress, expectCode: http.StatusConflict},
			{name: "unknown owner", err: errs.ErrOwnerNotFound, expectCode: http.StatusNotFound},
			{name: "unexpected", err: errs.New("boom"), expectCode: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Book(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
					builder.NewAppointmentBuilder().BuildRequestDTO(), "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: constraint violations expose the reason", func() {
		violation := errs.Mark(&schedule.ConstraintViolation{Reason: schedule.ReasonTooSoon, Detail: "starts within 24h"},
			errs.ErrConstraintViolation)
		s.mockCommands.EXPECT().Book(gomock.Any(), gomock.Any()).Return(nil, violation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			builder.NewAppointmentBuilder().BuildRequestDTO(), "")
		httptest.AssertConstraintReason(s.T(), rec, "too_soon")
	})
}

func (s *AppointmentHandlerTestSuite) TestGet() {
	s.Run("success: returns the appointment", func() {
		view := builder.NewAppointmentBuilder().WithOwner(s.ownerID).BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.ownerID, view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/"+view.ID.String(), nil, "")

		var res resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(view.Title, res.Title)
	})

	s.Run("error: 404 when missing", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.ownerID, id).Return(nil, errs.ErrAppointmentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Appointment not found")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid appointment id")
	})
}

func (s *AppointmentHandlerTestSuite) TestList() {
	s.Run("success: forwards filter and cursor, returns next cursor", func() {
		views := []*queries.AppointmentView{
			builder.NewAppointmentBuilder().WithOwner(s.ownerID).BuildView(),
			builder.NewAppointmentBuilder().WithOwner(s.ownerID).BuildView(),
		}
		s.mockQueries.EXPECT().List(gomock.Any(), s.ownerID, gomock.Any(), &queries.Cursor{After: "abc"}, 2).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, f queries.AppointmentFilter, _ *queries.Cursor, _ int) ([]*queries.AppointmentView, *queries.Cursor, error) {
				s.Require().NotNil(f.Status)
				s.Equal(appointment.StatusConfirmed, *f.Status)
				return views, &queries.Cursor{After: "next"}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments?status=confirmed&limit=2&cursor=abc", nil, "")

		var res resdto.AppointmentListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Len(res.Appointments, 2)
		s.Equal("next", res.NextCursor)
	})

	s.Run("success: limit is clamped", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.ownerID, gomock.Any(), nil, queries.MaxListLimit).
			Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments?limit=5000", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: unknown status filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments?status=bogus", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *AppointmentHandlerTestSuite) TestReschedule() {
	s.Run("success: keeps the id and returns the moved interval", func() {
		b := builder.NewAppointmentBuilder().WithOwner(s.ownerID)
		newStart := b.Start.Add(2 * time.Hour)
		moved := b.WithStart(newStart).BuildDomain()

		s.mockCommands.EXPECT().Reschedule(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.RescheduleInput) (*appointment.Appointment, error) {
				s.Equal(b.ID, in.AppointmentID)
				s.True(in.Interval.Start().Equal(newStart))
				return moved, nil
			}).Times(1)

		body := map[string]any{
			"new_start_time": newStart.Format(time.RFC3339),
			"new_end_time":   newStart.Add(30 * time.Minute).Format(time.RFC3339),
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/appointments/"+b.ID.String()+"/reschedule", body, "")

		var res resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(b.ID, res.ID)
		s.True(res.StartTime.Equal(newStart))
	})

	s.Run("error: 409 when the target overlaps", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Reschedule(gomock.Any(), gomock.Any()).Return(nil, errs.ErrSlotUnavailable).Times(1)

		start := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Hour)
		body := map[string]any{
			"new_start_time": start.Format(time.RFC3339),
			"new_end_time":   start.Add(time.Hour).Format(time.RFC3339),
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/appointments/"+id.String()+"/reschedule", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Slot unavailable")
	})
}

func (s *AppointmentHandlerTestSuite) TestCancel() {
	s.Run("success: body is optional", func() {
		cancelled := builder.NewAppointmentBuilder().WithOwner(s.ownerID).WithStatus(appointment.StatusCancelled).BuildDomain()
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.CancelInput) (*appointment.Appointment, error) {
				s.Equal(cancelled.ID(), in.AppointmentID)
				s.Empty(in.Reason)
				return cancelled, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/appointments/"+cancelled.ID().String()+"/cancel", nil, "")

		var res resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("cancelled", res.Status)
	})

	s.Run("error: 409 on a terminal appointment", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any()).Return(nil, errs.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/appointments/"+id.String()+"/cancel",
			map[string]any{"reason": "customer request"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Invalid status transition")
	})
}

func (s *AppointmentHandlerTestSuite) TestUpdateStatus() {
	s.Run("success: confirms", func() {
		confirmed := builder.NewAppointmentBuilder().WithOwner(s.ownerID).WithStatus(appointment.StatusConfirmed).BuildDomain()
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), s.ownerID, confirmed.ID(), appointment.StatusConfirmed).
			Return(confirmed, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/appointments/"+confirmed.ID().String()+"/status",
			map[string]any{"status": "confirmed"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: cancelled is not a status target", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/appointments/"+uuid.NewString()+"/status",
			map[string]any{"status": "cancelled"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func TestAppointmentHandler_RequiresOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	h := api.NewAppointmentHandler(commandsmock.NewMockAppointmentCommands(ctrl), queriesmock.NewMockAppointmentQueries(ctrl))
	r := gin.New()
	r.GET("/appointments/:id", h.Get)

	rec := httptest.PerformRequest(t, r, http.MethodGet, "/appointments/"+uuid.NewString(), nil, "")
	httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Unauthorized")
}
