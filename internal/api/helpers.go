package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/samandr77/microservices/challenge/internal/entity"
)

const (
	kindBadRequest        = "BadRequest"
	kindInvalidPhone      = "InvalidPhone"
	kindInvalidCodeFormat = "InvalidCodeFormat"
	kindInvalidUser       = "InvalidUser"
	kindUserNotFound      = "UserNotFound"
	kindUserBlocked       = "UserBlocked"
	kindUserDeleted       = "UserDeleted"
	kindInternal          = "Internal"
	kindTooManyRequests   = "TooManyRequests"
)

type ResponseError struct {
	OK      bool       `json:"ok"`
	Error   string     `json:"error"`
	Message string     `json:"message"`
	RetryAt *time.Time `json:"retry_at,omitempty"`
}

func sendErr(ctx context.Context, w http.ResponseWriter, code int, err error, kind, msg string) {
	writeErr(ctx, w, code, err, ResponseError{Error: kind, Message: msg})
}

func writeErr(ctx context.Context, w http.ResponseWriter, code int, err error, resp ResponseError) {
	if code >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, resp.Message, "error", err.Error(), "http_code", code)
	} else {
		slog.InfoContext(ctx, resp.Message, "error", err.Error(), "http_code", code, "kind", resp.Error)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err = json.NewEncoder(w).Encode(resp)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode error response", "error", err.Error())
	}
}

func sendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err.Error())
	}
}

// sendServiceErr renders any error returned by the challenge service. The
// challenge outcomes keep their kind as the error field.
func sendServiceErr(ctx context.Context, w http.ResponseWriter, err error) {
	if retryAt, ok := entity.RetryAt(err); ok {
		retryAt = retryAt.UTC()

		seconds := int(math.Ceil(time.Until(retryAt).Seconds()))
		if seconds < 1 {
			seconds = 1
		}

		w.Header().Set("Retry-After", strconv.Itoa(seconds))

		writeErr(ctx, w, http.StatusTooManyRequests, err, ResponseError{
			Error:   entity.Kind(err),
			Message: "Too many attempts. Try again later",
			RetryAt: &retryAt,
		})

		return
	}

	code, kind, msg := errorStatus(err)
	sendErr(ctx, w, code, err, kind, msg)
}

func errorStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, entity.ErrTooManyUnusedCodes):
		return http.StatusTooManyRequests, entity.Kind(err), "Too many unused codes. Use one of the codes already sent"
	case errors.Is(err, entity.ErrTooManyFailedAttempts):
		return http.StatusLocked, entity.Kind(err), "Too many failed attempts. Contact support"
	case errors.Is(err, entity.ErrCodeAlreadyUsed):
		return http.StatusUnauthorized, entity.Kind(err), "The code has already been used"
	case errors.Is(err, entity.ErrCodeInvalid):
		return http.StatusUnauthorized, entity.Kind(err), "Invalid or expired code"
	case errors.Is(err, entity.ErrPhoneInvalidFormat):
		return http.StatusUnprocessableEntity, kindInvalidPhone, "Phone must contain 10 to 15 digits"
	case errors.Is(err, entity.ErrCodeInvalidFormat):
		return http.StatusUnprocessableEntity, kindInvalidCodeFormat, "Code must contain digits only"
	case errors.Is(err, entity.ErrInvalidUser):
		return http.StatusBadRequest, kindInvalidUser, "Invalid user id"
	case errors.Is(err, entity.ErrUserNotFound):
		return http.StatusNotFound, kindUserNotFound, "User with this phone not found"
	case errors.Is(err, entity.ErrUserBlocked):
		return http.StatusLocked, kindUserBlocked, "Account is blocked. Contact support"
	case errors.Is(err, entity.ErrUserDeleted):
		return http.StatusGone, kindUserDeleted, "Account is deleted. Contact support"
	default:
		return http.StatusInternalServerError, kindInternal, "Internal error"
	}
}
