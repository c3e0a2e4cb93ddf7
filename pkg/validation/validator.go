package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Init configures the validator behind gin's binding: JSON names in errors and the aliases used
// by request DTOs.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register applies the project's tag name function, validations and aliases to v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterAlias("title", "notblank,max=200")
	v.RegisterAlias("tag", "notblank,max=40")
	v.RegisterAlias("phone", "e164")
}

// ToDetails converts binding errors into a field→message map for the error envelope.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return map[string]string{ute.Field: "must be of type " + ute.Type.String()}
	}
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fieldPath(fe)] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

// fieldPath drops the struct name from the namespace: "createEventRequest.age_limit.lower"
// becomes "age_limit.lower".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.ActualTag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "e164", "phone":
		return "must be a valid phone number"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "min", "gte":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must have at least " + param + " items or characters"
	case "max", "lte":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must have at most " + param + " items or characters"
	case "gt":
		return "must be greater than " + param
	case "lt":
		return "must be less than " + param
	case "gtefield":
		return "must be greater than or equal to " + param
	case "ltefield":
		return "must be less than or equal to " + param
	case "datetime":
		return "must match datetime format " + param
	case "unique":
		return "must contain unique items"
	default:
		if param != "" {
			return fmt.Sprintf("failed '%s=%s'", fe.ActualTag(), param)
		}
		return fmt.Sprintf("failed '%s'", fe.ActualTag())
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
