package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig       = fmt.Errorf("configuration not found")
	ErrInvalidConfig       = fmt.Errorf("invalid configuration")
	ErrMissingCredentials  = fmt.Errorf("missing credentials")
	ErrServerMisconfigured = fmt.Errorf("missing server credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrExchangeFailed   = fmt.Errorf("token exchange failed")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// Catalog and provider errors
	ErrFetchFailed        = fmt.Errorf("catalog fetch failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrAPIRequest         = fmt.Errorf("API request failed")

	// Lifecycle and ledger errors
	ErrNotFound          = fmt.Errorf("not found")
	ErrInvalidTip        = fmt.Errorf("tip amount must be positive")
	ErrInvalidAmount     = fmt.Errorf("amount must be positive")
	ErrNoTargetDJ        = fmt.Errorf("no target DJ selected")
	ErrInsufficientFunds = fmt.Errorf("insufficient wallet balance")

	// Input validation errors
	ErrInvalidRequest  = fmt.Errorf("invalid request")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
