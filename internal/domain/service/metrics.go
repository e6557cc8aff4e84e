package service

// Outcome labels for account metrics.
const (
	OutcomeSuccess            = "success"
	OutcomeDuplicate          = "duplicate"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeIntegrityViolation = "integrity_violation"
	OutcomeError              = "error"
)

// MetricsCollector records account activity. Implementations must be safe for concurrent use.
type MetricsCollector interface {
	RecordRegistration(outcome string)
	RecordLogin(outcome string)
	RecordSessionRejected()
}
