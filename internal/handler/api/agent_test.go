//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"appointment-engine/internal/domain/agent"
	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/handler/api"
	resdto "appointment-engine/internal/handler/dto/response"
	"appointment-engine/internal/handler/middleware"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/usecase/commands"
	"appointment-engine/internal/usecase/queries"
	"appointment-engine/tests/common/builder"
	"appointment-engine/tests/common/httptest"
	commandsmock "appointment-engine/tests/mock/commands"
	queriesmock "appointment-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const agentToken = "agt_secret"

type AgentActionsHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockAgents       *commandsmock.MockAgentCommands
	mockAppointments *commandsmock.MockAppointmentCommands
	mockAvailability *queriesmock.MockAvailabilityQueries
	mockViews        *queriesmock.MockAppointmentQueries
	mockCalendar     *queriesmock.MockCalendarQueries
	clock            *clock.MockClock
	ownerID          uuid.UUID
	agent            *agent.Agent
	settings         *schedule.Settings
}

func (s *AgentActionsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.ownerID = uuid.New()
	s.agent = agent.Reconstruct(uuid.New(), s.ownerID, "front desk", "hash", true, time.Now(), time.Now())
	s.clock = clock.NewMockClock(time.Date(2030, 5, 6, 22, 30, 0, 0, time.UTC))

	var err error
	s.settings, err = schedule.NewSettings(schedule.SettingsParams{
		OwnerID:     s.ownerID,
		Hours:       schedule.DefaultWeeklyHours(),
		SlotMinutes: 30,
		Timezone:    "Asia/Tokyo",
	})
	s.Require().NoError(err)

	s.mockCtrl = gomock.NewController(s.T())
	s.mockAgents = commandsmock.NewMockAgentCommands(s.mockCtrl)
	s.mockAppointments = commandsmock.NewMockAppointmentCommands(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.mockViews = queriesmock.NewMockAppointmentQueries(s.mockCtrl)
	s.mockCalendar = queriesmock.NewMockCalendarQueries(s.mockCtrl)

	h := api.NewAgentActionsHandler(s.mockAvailability, s.mockViews, s.mockCalendar, s.mockAppointments, s.clock)
	auth := middleware.NewAgentAuthMiddleware(s.mockAgents)

	g := s.router.Group("/agent-actions/:agent_id", auth.RequireAgent())
	g.POST("/check-availability", h.CheckAvailability)
	g.POST("/book", h.Book)
	g.GET("/appointments/today", h.Today)
}

func (s *AgentActionsHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAgentActionsHandlerSuite(t *testing.T) {
	suite.Run(t, new(AgentActionsHandlerTestSuite))
}

func (s *AgentActionsHandlerTestSuite) url(suffix string) string {
	return "/agent-actions/" + s.agent.ID().String() + suffix
}

func (s *AgentActionsHandlerTestSuite) authed() map[string]string {
	return map[string]string{middleware.AgentTokenHeader: agentToken}
}

func (s *AgentActionsHandlerTestSuite) expectAuth() {
	s.mockAgents.EXPECT().Authenticate(gomock.Any(), s.agent.ID(), agentToken).Return(s.agent, nil).Times(1)
}

func (s *AgentActionsHandlerTestSuite) TestAuthentication() {
	s.Run("error: missing token", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, s.url("/appointments/today"), nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Agent token required")
	})

	s.Run("error: wrong token", func() {
		s.mockAgents.EXPECT().Authenticate(gomock.Any(), s.agent.ID(), "nope").
			Return(nil, errs.Mark(errs.New("token mismatch"), commands.ErrInvalidAgentToken)).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, s.url("/appointments/today"), nil,
			map[string]string{middleware.AgentTokenHeader: "nope"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid agent token")
	})

	s.Run("error: inactive agent", func() {
		s.mockAgents.EXPECT().Authenticate(gomock.Any(), s.agent.ID(), agentToken).Return(nil, agent.ErrAgentInactive).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, s.url("/appointments/today"), nil, s.authed())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Agent is inactive")
	})

	s.Run("error: malformed agent id", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/agent-actions/xyz/appointments/today", nil, s.authed())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid agent id")
	})
}

func (s *AgentActionsHandlerTestSuite) TestCheckAvailability() {
	s.Run("success: lists slots in the owner's timezone", func() {
		s.expectAuth()
		s.mockCalendar.EXPECT().Settings(gomock.Any(), s.ownerID).Return(s.settings, nil).Times(1)

		// 10:00 Tokyo is 01:00 UTC
		slotStart := time.Date(2030, 5, 7, 1, 0, 0, 0, time.UTC)
		s.mockAvailability.EXPECT().ForDate(gomock.Any(), s.ownerID, time.Date(2030, 5, 7, 0, 0, 0, 0, time.UTC), 60*time.Minute, 10).
			Return(&queries.AvailabilityResult{
				OwnerID:        s.ownerID,
				Timezone:       "Asia/Tokyo",
				SlotDuration:   time.Hour,
				Slots:          []schedule.AvailabilitySlot{{Interval: appointment.MustInterval(slotStart, slotStart.Add(time.Hour)), Available: true}},
				TotalSlots:     8,
				AvailableCount: 1,
			}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, s.url("/check-availability"),
			map[string]any{"date": "2030-05-07", "duration_minutes": 60}, s.authed())

		var res resdto.AgentAvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res.Slots, 1)
		s.Equal("10:00", res.Slots[0].StartTime)
		s.Equal("11:00", res.Slots[0].EndTime)
		s.Contains(res.Message, "1 available")
	})

	s.Run("error: malformed date", func() {
		s.expectAuth()

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, s.url("/check-availability"),
			map[string]any{"date": "07/05/2030"}, s.authed())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *AgentActionsHandlerTestSuite) TestBook() {
	body := map[string]any{
		"date":             "2030-05-08",
		"start_time":       "14:30",
		"duration_minutes": 30,
		"customer_name":    "Taro Yamada",
		"customer_phone":   "+81-3-0000-0000",
	}

	s.Run("success: books in the owner's timezone and tags the agent", func() {
		s.expectAuth()
		s.mockCalendar.EXPECT().Settings(gomock.Any(), s.ownerID).Return(s.settings, nil).Times(1)

		booked := builder.NewAppointmentBuilder().WithOwner(s.ownerID).BuildDomain()
		s.mockAppointments.EXPECT().Book(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.BookInput) (*commands.BookResult, error) {
				s.Equal(s.ownerID, in.OwnerID)
				s.True(in.Interval.Start().Equal(time.Date(2030, 5, 8, 5, 30, 0, 0, time.UTC)))
				s.Equal(30*time.Minute, in.Interval.Duration())
				s.Equal(appointment.SourceVoiceAgent, in.Source)
				s.Require().NotNil(in.AgentID)
				s.Equal(s.agent.ID(), *in.AgentID)
				s.Equal("Appointment - Taro Yamada", in.Title)
				s.Equal("voice_ai", in.Metadata["booked_via"])
				return &commands.BookResult{Appointment: booked}, nil
			}).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, s.url("/book"), body, s.authed())

		var res resdto.AgentBookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.True(res.Success)
		s.Equal(booked.ID(), res.AppointmentID)
		s.Contains(res.Message, "Taro Yamada")
	})

	s.Run("error: slot taken", func() {
		s.expectAuth()
		s.mockCalendar.EXPECT().Settings(gomock.Any(), s.ownerID).Return(s.settings, nil).Times(1)
		s.mockAppointments.EXPECT().Book(gomock.Any(), gomock.Any()).Return(nil, errs.ErrSlotUnavailable).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, s.url("/book"), body, s.authed())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Slot unavailable")
	})

	s.Run("error: missing customer phone", func() {
		s.expectAuth()
		incomplete := map[string]any{
			"date":             "2030-05-08",
			"start_time":       "14:30",
			"duration_minutes": 30,
			"customer_name":    "Taro Yamada",
		}
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, s.url("/book"), incomplete, s.authed())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *AgentActionsHandlerTestSuite) TestToday() {
	s.Run("success: uses the owner's local date", func() {
		s.expectAuth()
		s.mockCalendar.EXPECT().Settings(gomock.Any(), s.ownerID).Return(s.settings, nil).Times(1)

		view := builder.NewAppointmentBuilder().WithOwner(s.ownerID).
			WithStart(time.Date(2030, 5, 7, 0, 0, 0, 0, time.UTC)).BuildView()
		s.mockViews.EXPECT().Today(gomock.Any(), s.ownerID).Return([]*queries.AppointmentView{view}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, s.url("/appointments/today"), nil, s.authed())

		var res resdto.AgentTodayResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		// 22:30 UTC on the 6th is already the 7th in Tokyo
		s.Equal("2030-05-07", res.Date)
		s.Equal(1, res.TotalAppointments)
		s.Equal("09:00", res.Appointments[0].Time)
	})
}

type AgentHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockCtrl   *gomock.Controller
	mockAgents *commandsmock.MockAgentCommands
	ownerID    uuid.UUID
}

func (s *AgentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.ownerID = uuid.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockAgents = commandsmock.NewMockAgentCommands(s.mockCtrl)
	h := api.NewAgentHandler(s.mockAgents)

	g := s.router.Group("/agents", withOwner(s.ownerID))
	g.POST("", h.Register)
	g.POST("/:id/rotate-token", h.RotateToken)
}

func (s *AgentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAgentHandlerSuite(t *testing.T) {
	suite.Run(t, new(AgentHandlerTestSuite))
}

func (s *AgentHandlerTestSuite) TestRegister() {
	s.Run("success: returns the plaintext token once", func() {
		a := agent.Reconstruct(uuid.New(), s.ownerID, "front desk", "hash", true, time.Now(), time.Now())
		s.mockAgents.EXPECT().Register(gomock.Any(), s.ownerID, "front desk").
			Return(&commands.AgentCredentials{Agent: a, Token: "agt_plain"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/agents", map[string]any{"name": "front desk"}, "")

		var res resdto.AgentCredentialsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal(a.ID(), res.ID)
		s.Equal("agt_plain", res.Token)
	})

	s.Run("error: name required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/agents", map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *AgentHandlerTestSuite) TestRotateToken() {
	s.Run("error: agent of another owner is not found", func() {
		id := uuid.New()
		s.mockAgents.EXPECT().RotateToken(gomock.Any(), s.ownerID, id).Return(nil, agent.ErrAgentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/agents/"+id.String()+"/rotate-token", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Agent not found")
	})
}
