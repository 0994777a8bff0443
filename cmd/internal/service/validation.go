package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"vantay/cmd/internal/domain/entity"
	"vantay/cmd/internal/utils"
	"vantay/cmd/internal/utils/apierror"
)

// ClientOwnerLookup resolves the user owning a client. found is false when
// the client does not exist.
type ClientOwnerLookup func(ctx context.Context, clientID int64) (ownerID int64, found bool, err error)

// Transactor runs fn in one store transaction. Repositories called with the
// ctx passed to fn take part in that transaction.
type Transactor interface {
	Atomic(ctx context.Context, fn func(ctx context.Context) error) error
}

// ValidatePayload checks the struct tags of a request: every absent required
// field is reported in a single MissingField error.
func ValidatePayload(validate *validator.Validate, payload any) apierror.ErrorResponse {
	if err := validate.Struct(payload); err != nil {
		return apierror.FromValidationError(err)
	}
	return nil
}

// ValidateTimeRange requires endAt to be strictly after startAt. The
// comparison is on instants, so offsets do not matter.
func ValidateTimeRange(startAt, endAt time.Time) apierror.ErrorResponse {
	if !endAt.After(startAt) {
		return apierror.InvalidRangeError
	}
	return nil
}

// ParseTimeRange parses both bounds (a zone offset is mandatory) and
// validates their order. Returned times are UTC.
func ParseTimeRange(rawStart, rawEnd string) (time.Time, time.Time, apierror.ErrorResponse) {
	start, err := utils.ParseTimestamp(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, timestampError("start_at", err)
	}
	end, err := utils.ParseTimestamp(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, timestampError("end_at", err)
	}
	if apierr := ValidateTimeRange(start, end); apierr != nil {
		return time.Time{}, time.Time{}, apierr
	}
	return start, end, nil
}

// ValidateOwnership requires the client, when one is referenced, to exist and
// belong to userID. Call it with the ctx of the transaction doing the write.
func ValidateOwnership(ctx context.Context, userID int64, clientID *int64, lookup ClientOwnerLookup) apierror.ErrorResponse {
	if clientID == nil {
		return nil
	}

	ownerID, found, err := lookup(ctx, *clientID)
	if err != nil {
		log.Errorf("failed to look up owner of client %d: %v", *clientID, err)
		return apierror.StoreUnavailableError
	}
	if !found || ownerID != userID {
		return apierror.OwnershipMismatchError
	}
	return nil
}

func timestampError(field string, err error) apierror.ErrorResponse {
	if errors.Is(err, utils.ErrNoOffset) {
		return apierror.NewInvalidFieldError(field, "must include a timezone offset")
	}
	return apierror.NewInvalidFieldError(field, "must be an RFC 3339 timestamp")
}

// fromStoreError maps a repository failure to a response. Raw store errors
// are logged, never returned to the caller.
func fromStoreError(op string, err error) apierror.ErrorResponse {
	var apierr apierror.ErrorResponse
	if errors.As(err, &apierr) {
		return apierr
	}

	switch {
	case errors.Is(err, entity.ErrDuplicateKey):
		return apierror.UserAlreadyExistsError
	case errors.Is(err, entity.ErrUnknownReference):
		return apierror.UnknownReferenceError
	}

	log.Errorf("failed to %s: %v", op, err)
	return apierror.StoreUnavailableError
}
