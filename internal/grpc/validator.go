package server

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// ErrInvalidRequest wraps every validation failure.
var ErrInvalidRequest = errors.New("invalid request")

const (
	// DefaultWindowHours is used when a history request leaves the window unset.
	DefaultWindowHours = 24
	minWindowHours     = 1
	maxWindowHours     = 7 * 24
	maxFutureSkew      = 24 * time.Hour
)

// RequestValidator checks dashboard requests before they reach the store.
type RequestValidator struct {
	maxFutureSkew time.Duration
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{maxFutureSkew: maxFutureSkew}
}

// ResolveNow returns the reference time of a request: the caller's
// timestamp when set, else serverNow. A timestamp more than a day ahead of
// serverNow is rejected.
func (v *RequestValidator) ResolveNow(ts *timestamppb.Timestamp, serverNow time.Time) (time.Time, error) {
	if ts == nil {
		return serverNow, nil
	}
	if err := ts.CheckValid(); err != nil {
		return time.Time{}, fmt.Errorf("%w: malformed timestamp: %v", ErrInvalidRequest, err)
	}
	now := ts.AsTime()
	if now.Sub(serverNow) > v.maxFutureSkew {
		return time.Time{}, fmt.Errorf("%w: now is too far in the future", ErrInvalidRequest)
	}
	return now, nil
}

// WindowHours validates a history window. Zero selects DefaultWindowHours.
func (v *RequestValidator) WindowHours(hours int32) (time.Duration, error) {
	if hours == 0 {
		hours = DefaultWindowHours
	}
	if hours < minWindowHours || hours > maxWindowHours {
		return 0, fmt.Errorf("%w: window_hours must be in [%d, %d], got %d",
			ErrInvalidRequest, minWindowHours, maxWindowHours, hours)
	}
	return time.Duration(hours) * time.Hour, nil
}
