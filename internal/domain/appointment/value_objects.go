package appointment

import (
	"regexp"
	"strings"

	"appointment-engine/internal/pkg/errs"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 2000
	MaxReasonLength      = 500
)

var (
	ErrInvalidStatus     = errs.Mark(errs.New("invalid appointment status"), errs.ErrDomainValidation)
	ErrInvalidAttendee   = errs.Mark(errs.New("attendee name is required"), errs.ErrDomainValidation)
	ErrInvalidEmail      = errs.Mark(errs.New("invalid email format"), errs.ErrDomainValidation)
	ErrInvalidTitle      = errs.Mark(errs.New("title must be 1-255 characters"), errs.ErrDomainValidation)
	ErrDescriptionLength = errs.Mark(errs.New("description is too long"), errs.ErrDomainValidation)
	ErrInvalidSource     = errs.Mark(errs.New("invalid appointment source"), errs.ErrDomainValidation)
	ErrReasonTooLong     = errs.Mark(errs.New("reason is too long"), errs.ErrDomainValidation)
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Attendee struct {
	name  string
	email string
	phone string
}

func NewAttendee(name, email, phone string) (Attendee, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if name == "" || len(name) > MaxTitleLength {
		return Attendee{}, ErrInvalidAttendee
	}
	if email != "" && !emailRegex.MatchString(email) {
		return Attendee{}, ErrInvalidEmail
	}
	return Attendee{name: name, email: email, phone: phone}, nil
}

// RestoreAttendee rebuilds a stored attendee without validation.
func RestoreAttendee(name, email, phone string) Attendee {
	return Attendee{name: name, email: email, phone: phone}
}

func (a Attendee) Name() string  { return a.name }
func (a Attendee) Email() string { return a.email }
func (a Attendee) Phone() string { return a.phone }

// Details is the descriptive part of an appointment. Timezone is for display only.
type Details struct {
	title       string
	description string
	location    string
	timezone    string
}

func NewDetails(title, description, location, timezone string) (Details, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > MaxTitleLength {
		return Details{}, ErrInvalidTitle
	}
	if len(description) > MaxDescriptionLength {
		return Details{}, ErrDescriptionLength
	}
	if timezone == "" {
		timezone = "UTC"
	}
	return Details{
		title:       title,
		description: strings.TrimSpace(description),
		location:    strings.TrimSpace(location),
		timezone:    timezone,
	}, nil
}

func RestoreDetails(title, description, location, timezone string) Details {
	return Details{title: title, description: description, location: location, timezone: timezone}
}

func (d Details) Title() string       { return d.title }
func (d Details) Description() string { return d.description }
func (d Details) Location() string    { return d.location }
func (d Details) Timezone() string    { return d.timezone }

type Source string

const (
	SourceDashboard  Source = "dashboard"
	SourceVoiceAgent Source = "voice_agent"
)

func (s Source) String() string { return string(s) }

func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceDashboard, SourceVoiceAgent:
		return Source(s), nil
	case "":
		return SourceDashboard, nil
	default:
		return "", ErrInvalidSource
	}
}

// Metadata keys written by the aggregate.
const (
	MetaRescheduleReason   = "reschedule_reason"
	MetaPreviousStart      = "previous_start_time"
	MetaCancellationReason = "cancellation_reason"
)

const (
	ActionCreated     = "created"
	ActionRescheduled = "rescheduled"
	ActionCancelled   = "cancelled"
	ActionStatus      = "status_changed"
)
