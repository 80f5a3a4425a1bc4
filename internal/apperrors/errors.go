package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the discriminated error code surfaced to callers in the
// response envelope's error.code field.
type Kind string

const (
	KindValidation           Kind = "VALIDATION_ERROR"
	KindInvalidAmountFormat  Kind = "INVALID_AMOUNT_FORMAT"
	KindUnbalancedEntry      Kind = "UNBALANCED_ENTRY"
	KindMissingAccount       Kind = "MISSING_ACCOUNT"
	KindDuplicateAccountCode Kind = "DUPLICATE_ACCOUNT_CODE"
	// KindDuplicateExternalID completes the error taxonomy for clients.
	// The importer counts natural-key duplicates instead of failing, so
	// nothing constructs it today.
	KindDuplicateExternalID        Kind = "DUPLICATE_EXTERNAL_ID"
	KindContraConfirmationRequired Kind = "CONTRA_CONFIRMATION_REQUIRED"
	KindIdempotencyRequired        Kind = "IDEMPOTENCY_REQUIRED"
	KindTransactionNotFound        Kind = "TRANSACTION_NOT_FOUND"
	KindOverAllocated              Kind = "OVER_ALLOCATED"
	KindDuplicateJournalNumber     Kind = "DUPLICATE_JOURNAL_NUMBER"
	KindNotFound                   Kind = "NOT_FOUND"
	KindUnauthorized               Kind = "UNAUTHORIZED"
	KindInternal                   Kind = "INTERNAL_ERROR"
)

// AppError is the structured error type used throughout the core. It carries
// a machine-readable Kind plus optional details for the caller; the wrapped
// cause stays available to errors.Is/As and is never re-serialized into
// message text for re-parsing.
type AppError struct {
	Kind    Kind
	Message string
	Details map[string]any
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches AppErrors by Kind, so comparisons survive wrapping.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// New creates an AppError with the given kind and message.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap creates an AppError that preserves an underlying cause.
func Wrap(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the Kind from any error; non-AppErrors report KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// DetailsOf extracts structured details from any error, nil if absent.
func DetailsOf(err error) map[string]any {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error kind to the HTTP status used by the transport
// layer. Mirrors the status assignment of the hosted service API.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInvalidAmountFormat, KindUnbalancedEntry,
		KindMissingAccount, KindIdempotencyRequired, KindContraConfirmationRequired:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound, KindTransactionNotFound:
		return http.StatusNotFound
	case KindDuplicateAccountCode, KindDuplicateExternalID, KindOverAllocated:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewInvalidAmountFormat reports an amount string that fails the scale-4
// decimal pattern.
func NewInvalidAmountFormat(value string) *AppError {
	return &AppError{
		Kind:    KindInvalidAmountFormat,
		Message: fmt.Sprintf("invalid amount format: %q", value),
		Details: map[string]any{"value": value},
	}
}

// NewUnbalancedEntry reports debit/credit totals that differ. Both totals
// are carried as formatted scale-4 strings.
func NewUnbalancedEntry(debitTotal, creditTotal string) *AppError {
	return &AppError{
		Kind:    KindUnbalancedEntry,
		Message: fmt.Sprintf("entry is unbalanced: debits %s != credits %s", debitTotal, creditTotal),
		Details: map[string]any{"debitTotal": debitTotal, "creditTotal": creditTotal},
	}
}

// NewMissingAccount reports every account code that failed to resolve, not
// just the first.
func NewMissingAccount(codes []string) *AppError {
	return &AppError{
		Kind:    KindMissingAccount,
		Message: fmt.Sprintf("account code(s) not found: %s", strings.Join(codes, ", ")),
		Details: map[string]any{"missingAccountCodes": codes},
	}
}

// NewDuplicateAccountCode reports a chart-of-accounts code collision.
func NewDuplicateAccountCode(code string) *AppError {
	return &AppError{
		Kind:    KindDuplicateAccountCode,
		Message: fmt.Sprintf("account code already exists: %s", code),
		Details: map[string]any{"code": code},
	}
}

// NewTransactionNotFound reports an allocation against an unknown raw
// transaction.
func NewTransactionNotFound(id string) *AppError {
	return &AppError{
		Kind:    KindTransactionNotFound,
		Message: fmt.Sprintf("raw transaction not found: %s", id),
		Details: map[string]any{"rawTransactionId": id},
	}
}

// NewOverAllocated reports an allocation that would exceed the remaining
// unallocated amount of a raw transaction.
func NewOverAllocated(id, remaining, requested string) *AppError {
	return &AppError{
		Kind:    KindOverAllocated,
		Message: fmt.Sprintf("allocation of %s exceeds remaining %s for raw transaction %s", requested, remaining, id),
		Details: map[string]any{
			"rawTransactionId": id,
			"remaining":        remaining,
			"requested":        requested,
		},
	}
}

// NewInternal wraps an unexpected storage or runtime failure.
func NewInternal(message string, cause error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, cause: cause}
}
