package reminder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "appointment:reminder"

type Payload struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	StartsAt      time.Time `json:"starts_at"`
}

func NewTask(p Payload) (*asynq.Task, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAppointmentReminder, b), nil
}

// TaskID is unique per appointment start, so rescheduling enqueues a new
// task while the stale one is skipped on delivery.
func TaskID(p Payload) string {
	return fmt.Sprintf("reminder:%s:%d", p.AppointmentID, p.StartsAt.Unix())
}
