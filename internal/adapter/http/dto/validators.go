package dto

import (
	"regexp"

	"payzoll-audit/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("record_type", validateRecordType)
		_ = v.RegisterValidation("payment_action", validatePaymentAction)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, and dot.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

func validateRecordType(fl validator.FieldLevel) bool {
	return domain.RecordType(fl.Field().String()).Valid()
}

func validatePaymentAction(fl validator.FieldLevel) bool {
	return domain.PaymentAction(fl.Field().String()).Valid()
}
