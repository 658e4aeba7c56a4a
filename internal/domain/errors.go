package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Precondition failures. These block the network call.
var (
	ErrNotStarted        = errors.New("activity has not started")
	ErrEnded             = errors.New("activity has ended")
	ErrFull              = errors.New("no remaining slots")
	ErrInFlight          = errors.New("submission already in flight")
	ErrAlreadyRegistered = errors.New("already registered in this session")
)

// ErrValidation matches every ValidationError via errors.Is.
var ErrValidation = errors.New("validation error")

// User-facing copy.
const (
	MsgNotStarted   = "活动尚未开始，请耐心等待"
	MsgEnded        = "活动已结束，感谢您的关注！"
	MsgFull         = "报名名额已满！"
	MsgInFlight     = "正在提交，请稍候"
	MsgRegistered   = "您已完成报名"
	MsgSuccess      = "报名成功！"
	MsgNetwork      = "网络错误，请稍后重试"
	MsgSubmitFailed = "报名失败，请稍后重试"
	MsgInvalidInput = "请检查填写的信息"
	MsgListFailed   = "获取报名信息失败，请稍后重试"
)

// Field names a form field, matching the JSON payload keys.
type Field string

const (
	FieldName          Field = "name"
	FieldPhone         Field = "phone"
	FieldCoursePackage Field = "coursePackage"
)

// ValidationError flags one or more form fields. It never reaches the network.
type ValidationError struct {
	Fields map[Field]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		keys = append(keys, string(f))
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// PreconditionError reports that phase or capacity gating blocked a submission.
type PreconditionError struct {
	Reason error
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason.Error()
}

func (e *PreconditionError) Unwrap() error { return e.Reason }

// Message returns the text shown to the user.
func (e *PreconditionError) Message() string {
	switch {
	case errors.Is(e.Reason, ErrNotStarted):
		return MsgNotStarted
	case errors.Is(e.Reason, ErrEnded):
		return MsgEnded
	case errors.Is(e.Reason, ErrFull):
		return MsgFull
	case errors.Is(e.Reason, ErrInFlight):
		return MsgInFlight
	case errors.Is(e.Reason, ErrAlreadyRegistered):
		return MsgRegistered
	default:
		return e.Reason.Error()
	}
}

// ServerRejection is a completed call the server answered with a failure.
// Message is shown verbatim.
type ServerRejection struct {
	Code    int
	Message string
}

func (e *ServerRejection) Error() string {
	return fmt.Sprintf("server rejected registration (code %d): %s", e.Code, e.Message)
}

// TransportError is a call that never produced a usable response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// PollError wraps a failed remaining-slots fetch. It is logged and swallowed.
type PollError struct {
	Err error
}

func (e *PollError) Error() string {
	return "polling remaining slots: " + e.Err.Error()
}

func (e *PollError) Unwrap() error { return e.Err }

// UserMessage maps any error in the taxonomy to the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		pre       *PreconditionError
		rejection *ServerRejection
		transport *TransportError
		invalid   *ValidationError
	)
	switch {
	case errors.As(err, &pre):
		return pre.Message()
	case errors.As(err, &rejection):
		if rejection.Message == "" {
			return MsgSubmitFailed
		}
		return rejection.Message
	case errors.As(err, &invalid):
		return MsgInvalidInput
	case errors.As(err, &transport):
		return MsgNetwork
	default:
		return MsgNetwork
	}
}
