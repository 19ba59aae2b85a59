package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code, so that
// errors.Is works against the constructor values below.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// ---- Security & Authentication (SEC) ----

func ErrMissingSigner() *AppError {
	return New("SEC_001", "Missing signer", http.StatusUnauthorized)
}

func ErrInvalidSignature() *AppError {
	return New("SEC_002", "Invalid signature", http.StatusUnauthorized)
}

func ErrTimestampExpired() *AppError {
	return New("SEC_003", "Request timestamp expired", http.StatusForbidden)
}

func ErrNonceUsed() *AppError {
	return New("SEC_004", "Nonce has already been used", http.StatusForbidden)
}

// ---- Royalty ledger & vault (ROY) ----

func ErrInvalidCollectionConfig() *AppError {
	return New("ROY_001", "Invalid collection config parameters", http.StatusBadRequest)
}

func ErrInvalidBalanceLedger() *AppError {
	return New("ROY_002", "Invalid balance ledger address", http.StatusBadRequest)
}

func ErrInvalidNft() *AppError {
	return New("ROY_003", "NFT address not found in ledger", http.StatusNotFound)
}

func ErrInvalidArtist() *AppError {
	return New("ROY_004", "Artist address not found in ledger", http.StatusNotFound)
}

func ErrInvalidNftAssociatedAccount() *AppError {
	return New("ROY_005", "Incorrect associated account for NFT", http.StatusBadRequest)
}

func ErrAssociatedAccountBalanceZero() *AppError {
	return New("ROY_006", "Associated account has a balance of zero", http.StatusBadRequest)
}

func ErrNftNotOwnedByWithdrawer() *AppError {
	return New("ROY_007", "NFT is not owned by withdrawer", http.StatusForbidden)
}

func ErrInvalidRoyaltiesDistribution() *AppError {
	return New("ROY_008", "Unable to distribute royalties as no NFTs have been minted", http.StatusUnprocessableEntity)
}

func ErrArtistLedgerNotInitialized() *AppError {
	return New("ROY_009", "Artist ledger not initialized", http.StatusUnprocessableEntity)
}

func ErrMissingCollectionAuthoritySignature() *AppError {
	return New("ROY_010", "Missing collection authority signature", http.StatusForbidden)
}

func ErrInvalidWithdrawer() *AppError {
	return New("ROY_011", "Withdrawer is not entitled to this balance", http.StatusForbidden)
}

func ErrCollectionAlreadyInitialized() *AppError {
	return New("ROY_012", "Collection already initialized", http.StatusConflict)
}

func ErrCollectionNotInitialized() *AppError {
	return New("ROY_013", "Collection not initialized", http.StatusNotFound)
}

func ErrDuplicateNft() *AppError {
	return New("ROY_014", "NFT already registered in collection", http.StatusConflict)
}

func ErrConservationViolation() *AppError {
	return New("ROY_015", "Ledger balances exceed vault custody", http.StatusInternalServerError)
}

func ErrArithmeticOverflow() *AppError {
	return New("ROY_016", "Amount overflows ledger balance", http.StatusUnprocessableEntity)
}

// ---- Funds (PAY) ----

func ErrInsufficientFunds() *AppError {
	return New("PAY_001", "Insufficient balance in source account", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("PAY_002", "Invalid amount", http.StatusBadRequest)
}

func ErrDuplicateTransaction() *AppError {
	return New("PAY_003", "Duplicate transaction", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("PAY_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrCorruptAccount(err error) *AppError {
	return Wrap("SYS_003", "Account data could not be decoded", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a PAY_002-style validation error.
func Validation(message string) *AppError {
	return New("PAY_002", message, http.StatusBadRequest)
}
