package errs

// Error taxonomy shared by the scheduling core and the HTTP layer.
var (
	// Time range errors
	ErrInvalidTimeRange = New("invalid time range")

	// Booking errors
	ErrSlotUnavailable      = New("slot unavailable")
	ErrConstraintViolation  = New("booking constraint violated")
	ErrInvalidTransition    = New("invalid status transition")
	ErrAppointmentNotFound  = New("appointment not found")
	ErrOwnerNotFound        = New("owner not found")
	ErrBlockedPeriodMissing = New("blocked period not found")

	// Idempotency errors
	ErrIdempotencyKeyReused  = New("idempotency key reused with a different request")
	ErrIdempotencyInProgress = New("idempotency in progress")

	// Validation errors
	ErrDomainValidation = New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = New("database operation failed")
)
