package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed     = fmt.Errorf("authentication failed")
	ErrRefreshFailed  = fmt.Errorf("token refresh failed")
	ErrNoRefreshToken = fmt.Errorf("no refresh token available")

	// API errors
	ErrAPIRequest     = fmt.Errorf("API request failed")
	ErrMalformedReply = fmt.Errorf("malformed API response")

	// Input validation and empty-result conditions
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrNoResults       = fmt.Errorf("no results")
)
