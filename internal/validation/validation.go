// Package validation 在请求进入工作流之前做字段校验，
// 失败结果与工作流使用同一个 outcome 形状。
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/d60-Lab/gin-blog/pkg/outcome"
)

// Subject 请求所属实体名，用于拼接 "Post [Title] is required."
type Subject interface {
	Subject() string
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
			return f.Name
		})
		_ = validate.RegisterValidation("nonzero_uuid", nonZeroUUID)
	})
	return validate
}

func nonZeroUUID(fl validator.FieldLevel) bool {
	id, err := uuid.Parse(fl.Field().String())
	return err == nil && id != uuid.Nil
}

// Validate 校验结构体；全部通过返回 Valid
func Validate(req Subject) outcome.Outcome {
	err := instance().Struct(req)
	if err == nil {
		return outcome.Valid()
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return outcome.Fail(outcome.CodeBadRequest, err.Error())
	}

	ns := make([]outcome.Notification, 0, len(ves))
	for _, fe := range ves {
		ns = append(ns, outcome.Notification{
			Code:        outcome.CodeUnprocessable,
			Description: message(req.Subject(), fe),
		})
	}
	return outcome.Invalid(ns...)
}

func message(subject string, fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s [%s] is required.", subject, field)
	case "nonzero_uuid":
		return fmt.Sprintf("%s [%s] must not be empty.", subject, field)
	case "max":
		return fmt.Sprintf("%s [%s] must be at most %s characters.", subject, field, fe.Param())
	default:
		return fmt.Sprintf("%s [%s] is invalid (%s).", subject, field, strings.ToLower(fe.Tag()))
	}
}
