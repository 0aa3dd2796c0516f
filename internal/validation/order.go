package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/templui/storefront/internal/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateOrder checks field-level constraints of an order request.
// The one-time vs subscription shape is decided by the session builder.
func ValidateOrder(order model.OrderRequest) error {
	err := instance().Struct(order)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := jsonField(fe.Field())
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("%s is too long (max %s characters)", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func jsonField(name string) string {
	switch name {
	case "PriceID":
		return "priceId"
	case "Price":
		return "price"
	case "Name":
		return "name"
	default:
		return name
	}
}
