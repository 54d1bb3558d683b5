package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Hosted backend & third-party service errors
var (
	ErrBackendUnavailable = errors.New("backend service unavailable")
	ErrIdentityService    = errors.New("identity service error")
	ErrNotificationFailed = errors.New("notification delivery failed")
	ErrStorageUpload      = errors.New("storage upload failed")
	ErrSubscription       = errors.New("change subscription failed")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

func NewBackendUnavailableError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrBackendUnavailable,
		Details:    fmt.Sprintf("Backend unavailable during %s", operation),
		Cause:      cause,
	}
}

func NewIdentityServiceError(operation string, statusCode int, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrIdentityService,
		Details:    fmt.Sprintf("Identity service %s returned status %d", operation, statusCode),
		Cause:      cause,
	}
}

func NewNotificationError(channel string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrNotificationFailed,
		Details:    fmt.Sprintf("Failed to deliver %s notification", channel),
		Cause:      cause,
		Field:      channel,
	}
}

func NewStorageUploadError(key string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStorageUpload,
		Details:    fmt.Sprintf("Failed to upload %s", key),
		Cause:      cause,
	}
}

func NewSubscriptionError(table string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrSubscription,
		Details:    fmt.Sprintf("Failed to subscribe to changes on %s", table),
		Cause:      cause,
	}
}

func NewConfigMissingError(key string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("%s is not configured", key),
		Field:      key,
	}
}

func NewConfigInvalidError(key, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("%s is invalid: %s", key, reason),
		Field:      key,
	}
}

func IsBackendUnavailableError(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}

func IsConfigMissingError(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
