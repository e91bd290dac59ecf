package middleware

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"interview-ai/internal/api/errors"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(wireFieldName)
	}
}

// wireFieldName reports a field by the name clients send: its json tag, else
// its form tag, else the Go field name.
func wireFieldName(field reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

// ValidateRequest binds the JSON body into req and validates both struct tags
// and domain rules.
func ValidateRequest(c *gin.Context, req interface{}) error {
	return validateWith(c, req, binding.JSON)
}

// ValidateForm binds a multipart or urlencoded form into req.
func ValidateForm(c *gin.Context, req interface{}) error {
	return validateWith(c, req, binding.FormMultipart)
}

func validateWith(c *gin.Context, req interface{}, b binding.Binding) error {
	// First, perform struct tag validation
	if err := c.ShouldBindWith(req, b); err != nil {
		return translateBindError(err)
	}

	// Then, perform domain validation if the struct implements Validator
	if v, ok := req.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func translateBindError(err error) error {
	validationErrors := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		for _, fieldError := range validationErrs {
			field := fieldError.Field()

			switch fieldError.Tag() {
			case "required":
				validationErrors[field] = "is required"
			case "min", "gt", "gte":
				validationErrors[field] = "is too small"
			case "max", "lt", "lte":
				validationErrors[field] = "is too large"
			case "oneof":
				validationErrors[field] = "must be one of the allowed values"
			case "url":
				validationErrors[field] = "must be a valid URL"
			default:
				validationErrors[field] = "is invalid"
			}
		}
	} else {
		validationErrors["request"] = "invalid request format"
	}

	return errors.NewValidationError(err.Error(), validationErrors)
}
