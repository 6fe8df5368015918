package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	tagColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("tagcolor", func(fl validator.FieldLevel) bool {
			return tagColorPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
			return TaskStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("taskpriority", func(fl validator.FieldLevel) bool {
			return TaskPriority(fl.Field().String()).Valid()
		})
		validate = v
	})
	return validate
}

// Validate checks the struct tags of an input shape and returns a readable
// summary of every failing field.
func Validate(input interface{}) error {
	err := validatorInstance().Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, describeFieldError(fe))
	}
	return errors.New(strings.Join(messages, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "tagcolor":
		return fmt.Sprintf("%s must be a hex color like #FF0000", fe.Field())
	case "username":
		return fmt.Sprintf("%s must contain only letters, digits and underscores", fe.Field())
	case "taskstatus":
		return fmt.Sprintf("%s must be one of %v", fe.Field(), TaskStatuses)
	case "taskpriority":
		return fmt.Sprintf("%s must be one of %v", fe.Field(), TaskPriorities)
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
