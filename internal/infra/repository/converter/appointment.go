package converter

import (
	"encoding/json"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/pgconv"
)

func AppointmentToInfra(a *appointment.Appointment) (query.CreateAppointmentParams, error) {
	md, err := json.Marshal(a.Metadata())
	if err != nil {
		return query.CreateAppointmentParams{}, errs.Wrap(err, "failed to encode appointment metadata")
	}

	details := a.Details()
	attendee := a.Attendee()
	iv := a.Interval()

	return query.CreateAppointmentParams{
		ID:            a.ID(),
		OwnerID:       a.OwnerID(),
		Title:         details.Title(),
		Description:   pgconv.TextOrNull(details.Description()),
		Location:      pgconv.TextOrNull(details.Location()),
		Timezone:      details.Timezone(),
		StartTime:     pgconv.TimeToPgtype(iv.Start()),
		EndTime:       pgconv.TimeToPgtype(iv.End()),
		Status:        a.Status().String(),
		AttendeeName:  attendee.Name(),
		AttendeeEmail: pgconv.TextOrNull(attendee.Email()),
		AttendeePhone: pgconv.TextOrNull(attendee.Phone()),
		Source:        a.Source().String(),
		AgentID:       pgconv.UUIDPtrToPgtype(a.AgentID()),
		SendReminders: a.SendReminders(),
		ReminderSent:  a.ReminderSent(),
		Metadata:      md,
		LastAction:    a.LastAction(),
		CancelledAt:   pgconv.TimePtrToPgtype(a.CancelledAt()),
		RescheduledAt: pgconv.TimePtrToPgtype(a.RescheduledAt()),
		CreatedAt:     pgconv.TimeToPgtype(a.CreatedAt()),
		UpdatedAt:     pgconv.TimeToPgtype(a.UpdatedAt()),
	}, nil
}

func AppointmentToUpdateParams(a *appointment.Appointment) (query.UpdateAppointmentParams, error) {
	md, err := json.Marshal(a.Metadata())
	if err != nil {
		return query.UpdateAppointmentParams{}, errs.Wrap(err, "failed to encode appointment metadata")
	}
	iv := a.Interval()
	return query.UpdateAppointmentParams{
		ID:            a.ID(),
		OwnerID:       a.OwnerID(),
		StartTime:     pgconv.TimeToPgtype(iv.Start()),
		EndTime:       pgconv.TimeToPgtype(iv.End()),
		Status:        a.Status().String(),
		Metadata:      md,
		LastAction:    a.LastAction(),
		ReminderSent:  a.ReminderSent(),
		CancelledAt:   pgconv.TimePtrToPgtype(a.CancelledAt()),
		RescheduledAt: pgconv.TimePtrToPgtype(a.RescheduledAt()),
		UpdatedAt:     pgconv.TimeToPgtype(a.UpdatedAt()),
	}, nil
}

// AppointmentToDomain trusts stored rows: values already passed validation
// on the way in, so only the interval and status are re-checked.
func AppointmentToDomain(row query.Appointment) (*appointment.Appointment, error) {
	iv, err := appointment.NewInterval(row.StartTime.Time, row.EndTime.Time)
	if err != nil {
		return nil, errs.Wrapf(err, "stored appointment %s has an invalid interval", row.ID)
	}
	status, err := appointment.ParseStatus(row.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "stored appointment %s has an invalid status", row.ID)
	}

	var md map[string]any
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &md); err != nil {
			return nil, errs.Wrapf(err, "stored appointment %s has invalid metadata", row.ID)
		}
	}

	return appointment.Reconstruct(appointment.ReconstructParams{
		ID:       row.ID,
		OwnerID:  row.OwnerID,
		Interval: iv,
		Status:   status,
		Details: appointment.RestoreDetails(
			row.Title,
			pgconv.TextValue(row.Description),
			pgconv.TextValue(row.Location),
			row.Timezone,
		),
		Attendee: appointment.RestoreAttendee(
			row.AttendeeName,
			pgconv.TextValue(row.AttendeeEmail),
			pgconv.TextValue(row.AttendeePhone),
		),
		Source:        appointment.Source(row.Source),
		AgentID:       pgconv.UUIDPtrFromPgtype(row.AgentID),
		SendReminders: row.SendReminders,
		ReminderSent:  row.ReminderSent,
		Metadata:      md,
		LastAction:    row.LastAction,
		CancelledAt:   pgconv.TimePtrFromPgtype(row.CancelledAt),
		RescheduledAt: pgconv.TimePtrFromPgtype(row.RescheduledAt),
		CreatedAt:     row.CreatedAt.Time.UTC(),
		UpdatedAt:     row.UpdatedAt.Time.UTC(),
	}), nil
}

func AppointmentsToDomain(rows []query.Appointment) ([]*appointment.Appointment, error) {
	out := make([]*appointment.Appointment, 0, len(rows))
	for _, row := range rows {
		a, err := AppointmentToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
