package apierror_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"vantay/cmd/internal/utils/apierror"
	"vantay/cmd/internal/utils/validators"
)

type payload struct {
	UserID  int64   `json:"user_id" validate:"required,gt=0"`
	StartAt string  `json:"start_at" validate:"required,tzdatetime"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

func TestFromValidationError_MissingFieldsReportedTogether(t *testing.T) {
	err := validators.New().Struct(payload{})

	apierr := apierror.FromValidationError(err)

	assert.Equal(t, http.StatusBadRequest, apierr.Code())
	assert.Equal(t, apierror.KindMissingField, apierr.Kind())
	simple := apierr.(*apierror.SimpleError)
	assert.Equal(t, []string{"user_id", "start_at"}, simple.Fields)
	assert.Equal(t, "user_id, start_at are required", simple.Message)
}

func TestFromValidationError_InvalidField(t *testing.T) {
	bad := "nope"
	err := validators.New().Struct(payload{UserID: 1, StartAt: "2025-01-01T10:00:00Z", Email: &bad})

	apierr := apierror.FromValidationError(err)

	assert.Equal(t, apierror.KindInvalidField, apierr.Kind())
	assert.Equal(t, []string{"email"}, apierr.(*apierror.SimpleError).Fields)
	assert.Equal(t, "email must be a valid email address", apierr.Error())
}

func TestFromValidationError_NotAValidationError(t *testing.T) {
	assert.Equal(t, apierror.MalformedBodyError, apierror.FromValidationError(errors.New("boom")))
}

func TestNewSimple_KindFollowsStatus(t *testing.T) {
	assert.Equal(t, apierror.KindNotFound, apierror.NewSimple(http.StatusNotFound, "Not Found").Kind())
	assert.Equal(t, apierror.KindInternal, apierror.NewSimple(http.StatusMethodNotAllowed, "Method Not Allowed").Kind())
}

func TestNewMissingFieldError_Single(t *testing.T) {
	e := apierror.NewMissingFieldError("user_id")
	assert.Equal(t, "user_id is required", e.Message)
	assert.False(t, e.OK)
}
