package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/plateful/recipebook/internal/types"
)

// fieldErrors converts a binding failure into the field-level error map of
// the validation contract. Non-validator errors (malformed JSON, wrong types)
// collapse into a single body-level entry.
func fieldErrors(err error, payload interface{}) types.FieldErrors {
	out := types.FieldErrors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = []string{"request body is not valid JSON for this resource"}
		return out
	}

	t := reflect.TypeOf(payload)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for _, fe := range verrs {
		name := jsonName(t, fe.StructField())
		out[name] = append(out[name], ruleMessage(name, fe))
	}
	return out
}

// jsonName resolves a struct field to its wire name.
func jsonName(t reflect.Type, structField string) string {
	if f, ok := t.FieldByName(structField); ok {
		tag := strings.Split(f.Tag.Get("json"), ",")[0]
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return strings.ToLower(structField)
}

func ruleMessage(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", name, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return fmt.Sprintf("%s must be a valid URL", name)
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
