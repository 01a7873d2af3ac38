// Package outcome 是工作流统一的结果载体：
// 没有通知即成功，否则每条通知描述一个具体问题。
package outcome

import (
	"fmt"
	"net/http"
)

// Code 通知分类，取值与 HTTP 状态码对齐
type Code int

const (
	CodeBadRequest    Code = http.StatusBadRequest
	CodeUnauthorized  Code = http.StatusUnauthorized
	CodeNotFound      Code = http.StatusNotFound
	CodeConflict      Code = http.StatusConflict
	CodeUnprocessable Code = http.StatusUnprocessableEntity
	CodeInternal      Code = http.StatusInternalServerError
)

// Notification 单条 (分类, 描述)
type Notification struct {
	Code        Code   `json:"code"`
	Description string `json:"description"`
}

func (n Notification) String() string {
	return fmt.Sprintf("%d: %s", n.Code, n.Description)
}

// Outcome 零条或多条通知的有序列表
type Outcome struct {
	notifications []Notification
}

func Valid() Outcome { return Outcome{} }

func Invalid(ns ...Notification) Outcome {
	return Outcome{notifications: append([]Notification(nil), ns...)}
}

// Fail 单条通知的失败结果
func Fail(code Code, description string) Outcome {
	return Invalid(Notification{Code: code, Description: description})
}

// Internal 把基础设施错误转成 internal error，只保留错误文本
func Internal(err error) Outcome {
	return Fail(CodeInternal, err.Error())
}

func (o Outcome) IsValid() bool { return len(o.notifications) == 0 }

// Notifications 返回副本
func (o Outcome) Notifications() []Notification {
	return append([]Notification(nil), o.notifications...)
}

// Has 是否包含指定分类的通知
func (o Outcome) Has(code Code) bool {
	for _, n := range o.notifications {
		if n.Code == code {
			return true
		}
	}
	return false
}

// Merge 追加另一个 Outcome 的通知
func (o Outcome) Merge(other Outcome) Outcome {
	if other.IsValid() {
		return o
	}
	return Invalid(append(o.Notifications(), other.notifications...)...)
}

// Errors 对外输出的错误载荷
type Errors struct {
	Type          string         `json:"type"`
	Notifications []Notification `json:"notifications"`
}

const validationErrorsType = "VALIDATION_ERRORS"

func (o Outcome) ToErrors() Errors {
	return Errors{Type: validationErrorsType, Notifications: o.Notifications()}
}

// Result 成功携带值，失败携带通知；调用方必须经 Value 取值
type Result[T any] struct {
	outcome Outcome
	value   T
}

func Ok[T any](v T) Result[T] { return Result[T]{value: v} }

// Failed 失败结果；attempted 仅用于诊断，可为零值
func Failed[T any](o Outcome, attempted T) Result[T] {
	if o.IsValid() {
		panic("outcome: Failed called with a valid outcome")
	}
	return Result[T]{outcome: o, value: attempted}
}

func (r Result[T]) Outcome() Outcome { return r.outcome }
func (r Result[T]) IsValid() bool    { return r.outcome.IsValid() }

// Value 仅在成功时返回 ok=true
func (r Result[T]) Value() (T, bool) {
	if !r.outcome.IsValid() {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Attempted 无论成败都返回携带的值
func (r Result[T]) Attempted() T { return r.value }
