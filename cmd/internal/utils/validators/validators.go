package validators

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"vantay/cmd/internal/domain/entity"
	"vantay/cmd/internal/utils"
)

// IsTZDateTime accepts RFC 3339 timestamps that carry a zone offset.
func IsTZDateTime(fl validator.FieldLevel) bool {
	_, err := utils.ParseTimestamp(fl.Field().String())
	return err == nil
}

func IsAppointmentStatus(fl validator.FieldLevel) bool {
	return entity.AppointmentStatus(fl.Field().String()).Valid()
}

// New returns a validator reporting fields by their JSON names, with the
// custom tags registered.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)
	_ = validate.RegisterValidation("tzdatetime", IsTZDateTime)
	_ = validate.RegisterValidation("apptstatus", IsAppointmentStatus)
	return validate
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
