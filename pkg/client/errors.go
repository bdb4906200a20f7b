package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinels for the client-observable error taxonomy. ErrAlreadyInCart is an
// expected business outcome, not an application error; callers surface it
// gently and must not log it as a failure.
var (
	ErrAlreadyInCart = errors.New("item already in cart")
	ErrListingHeld   = errors.New("listing held by another cart or sold")
	ErrNotInCart     = errors.New("item not in cart")
	ErrHoldExpired   = errors.New("hold expired before checkout")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrCartEmpty     = errors.New("cart empty")
	ErrRateLimited   = errors.New("rate limited")
)

// APIError is the decoded error body: HTTP status plus the backend's machine
// code and human message.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d (%s)", e.Status, e.Code)
}

// Is maps machine codes onto the package sentinels so callers can use
// errors.Is without inspecting codes themselves.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAlreadyInCart:
		return e.Code == "already_in_cart"
	case ErrListingHeld:
		return e.Code == "listing_held"
	case ErrNotInCart:
		return e.Code == "not_in_cart"
	case ErrHoldExpired:
		return e.Code == "hold_expired"
	case ErrCartEmpty:
		return e.Code == "cart_empty"
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound || e.Code == "not_found"
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	}
	return false
}

func decodeAPIError(status int, raw []byte) error {
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	_ = json.Unmarshal(raw, &body)
	if body.Code == "" {
		body.Code = "unknown"
	}
	if body.Error == "" {
		body.Error = strings.TrimSpace(string(raw))
	}
	return &APIError{Status: status, Code: body.Code, Message: body.Error}
}
