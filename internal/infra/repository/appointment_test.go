//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/infra"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/infra/repository"
	"appointment-engine/internal/pkg/pgconv"
	"appointment-engine/internal/usecase/shared"
	"appointment-engine/tests/common/builder"
	repositorymock "appointment-engine/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Create Appointment Tests
// =============================================================================

func TestAppointmentRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		returnErr  error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: appointment created"},
		{
			name:       "error: exclusion constraint reports a conflict",
			returnErr:  &pgconn.PgError{Code: "23P01", Message: "conflicting key value violates exclusion constraint"},
			expectKind: infra.KindConflict,
		},
		{
			name:       "error: serialization failure reports a conflict",
			returnErr:  &pgconn.PgError{Code: "40001"},
			expectKind: infra.KindConflict,
		},
		{
			name:       "error: database error occurs",
			returnErr:  errors.New("database connection error"),
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockAppointmentWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewAppointmentRepository(mockQueries, mockDB)
			a := builder.NewAppointmentBuilder().BuildDomain()

			mockQueries.EXPECT().CreateAppointment(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ query.DBTX, arg query.CreateAppointmentParams) error {
					assert.Equal(t, a.ID(), arg.ID)
					assert.True(t, arg.StartTime.Time.Equal(a.Interval().Start()))
					assert.True(t, arg.EndTime.Time.Equal(a.Interval().End()))
					return tc.returnErr
				})

			err := repo.Create(ctx, a)

			if tc.expectKind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
		})
	}
}

// =============================================================================
// Update / Lookup Tests
// =============================================================================

func TestAppointmentRepository_UpdateMissingRow(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockAppointmentWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewAppointmentRepository(mockQueries, mockDB)

	mockQueries.EXPECT().UpdateAppointment(ctx, mockDB, gomock.Any()).Return(int64(0), nil)

	err := repo.Update(ctx, builder.NewAppointmentBuilder().BuildDomain())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestAppointmentRepository_FindByIDNotFound(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockAppointmentWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewAppointmentRepository(mockQueries, mockDB)
	ownerID, id := uuid.New(), uuid.New()

	mockQueries.EXPECT().GetAppointmentForUpdate(ctx, mockDB, query.GetAppointmentParams{ID: id, OwnerID: ownerID}).
		Return(query.Appointment{}, pgx.ErrNoRows)

	_, err := repo.FindByIDForUpdate(ctx, ownerID, id)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestAppointmentRepository_FindByIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockAppointmentWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewAppointmentRepository(mockQueries, mockDB)
	want := builder.NewAppointmentBuilder().WithStatus(appointment.StatusConfirmed).BuildDomain()

	var stored query.CreateAppointmentParams
	mockQueries.EXPECT().CreateAppointment(ctx, mockDB, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ query.DBTX, arg query.CreateAppointmentParams) error {
			stored = arg
			return nil
		})
	require.NoError(t, repo.Create(ctx, want))

	mockQueries.EXPECT().GetAppointment(ctx, mockDB, query.GetAppointmentParams{ID: want.ID(), OwnerID: want.OwnerID()}).
		Return(stored, nil)

	got, err := repo.FindByID(ctx, want.OwnerID(), want.ID())
	require.NoError(t, err)
	assert.Equal(t, want.ID(), got.ID())
	assert.True(t, want.Interval().Equal(got.Interval()))
	assert.Equal(t, appointment.StatusConfirmed, got.Status())
	assert.Equal(t, want.Attendee().Email(), got.Attendee().Email())
	assert.Equal(t, want.Details().Title(), got.Details().Title())
}

// =============================================================================
// Idempotency Tests
// =============================================================================

func TestIdempotencyRepository_Lock(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	resultID := uuid.New()
	expires := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("success: returns the locked row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

		gomock.InOrder(
			mockQueries.EXPECT().TryInsertIdempotencyKey(ctx, mockDB, gomock.Any()).Return(nil),
			mockQueries.EXPECT().GetIdempotencyKeyForUpdate(ctx, mockDB, query.GetIdempotencyKeyParams{OwnerID: ownerID, Key: "k"}).
				Return(query.IdempotencyKey{
					Key:                 "k",
					OwnerID:             ownerID,
					Endpoint:            "POST /appointments",
					RequestHash:         "h",
					Status:              "completed",
					ResultAppointmentID: pgconv.UUIDToPgtype(resultID),
					ExpiresAt:           pgconv.TimeToPgtype(expires),
				}, nil),
		)

		rec, err := repo.Lock(ctx, ownerID, "k", "POST /appointments", "h", expires)
		require.NoError(t, err)
		assert.Equal(t, shared.IdempotencyCompleted, rec.Status)
		require.NotNil(t, rec.ResultAppointmentID)
		assert.Equal(t, resultID, *rec.ResultAppointmentID)
		assert.True(t, rec.ExpiresAt.Equal(expires))
	})

	t.Run("error: insert fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

		mockQueries.EXPECT().TryInsertIdempotencyKey(ctx, mockDB, gomock.Any()).Return(errors.New("connection reset"))

		_, err := repo.Lock(ctx, ownerID, "k", "POST /appointments", "h", expires)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestIdempotencyRepository_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

	mockQueries.EXPECT().DeleteExpiredIdempotencyKeys(ctx, mockDB).Return(int64(4), nil)

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use the query mock instead.")
}
