package errors

import (
	"fmt"
	"time"
)

type ErrorCode string

const (
	ErrCodeNoActiveListings      ErrorCode = "NO_ACTIVE_LISTINGS"
	ErrCodeNoActiveSolicitations ErrorCode = "NO_ACTIVE_SOLICITATIONS"

	ErrCodeListingFetchFailed      ErrorCode = "LISTING_FETCH_FAILED"
	ErrCodeSolicitationFetchFailed ErrorCode = "SOLICITATION_FETCH_FAILED"
	ErrCodeProfileFetchFailed      ErrorCode = "PROFILE_FETCH_FAILED"

	ErrCodePairScoringFailed  ErrorCode = "PAIR_SCORING_FAILED"
	ErrCodeMatchPersistFailed ErrorCode = "MATCH_PERSIST_FAILED"

	ErrCodeInvalidSolicitationPayload ErrorCode = "INVALID_SOLICITATION_PAYLOAD"
	ErrCodeDatabaseConnectionFailed   ErrorCode = "DATABASE_CONNECTION_FAILED"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func NewNoActiveListingsError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoActiveListings,
		Message:   "No active properties found",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewNoActiveSolicitationsError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoActiveSolicitations,
		Message:   "No active opportunities found",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewListingFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeListingFetchFailed,
		Message:   "Failed to fetch active listings",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewSolicitationFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSolicitationFetchFailed,
		Message:   "Failed to fetch active solicitations",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewProfileFetchFailedError(brokerID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileFetchFailed,
		Message:   "Failed to fetch broker experience profile",
		Details:   fmt.Sprintf("brokerId: %s, error: %s", brokerID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewPairScoringFailedError(listingID, solicitationID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePairScoringFailed,
		Message:   "Scoring failed for listing/solicitation pair",
		Details:   fmt.Sprintf("listingId: %s, solicitationId: %s, error: %s", listingID, solicitationID, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewMatchPersistFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatchPersistFailed,
		Message:   "Failed to persist match results",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidSolicitationPayloadError(solicitationID, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidSolicitationPayload,
		Message:   "Solicitation payload failed schema validation",
		Details:   fmt.Sprintf("solicitationId: %s, %s", solicitationID, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
