package common

import (
	"fmt"
)

const (
	// 拒绝处理类错误状态
	ErrStatusRefused = 400
	// 内部错误类错误状态
	ErrStatusInternalErr = 500
)

type Error struct {
	// 用于统计和监控的错误分类（类似http的2xx、4xx、5xx）
	Status int
	// 用于标识具体错误的详细错误码
	Code int
	// 用于说明具体错误的说明信息
	Msg string
}

func CastError(err error) *Error {
	return CastErrorDefault(err, ErrUnknown)
}

func CastErrorDefault(err error, defaultErr *Error) *Error {
	if err == nil {
		return nil
	}
	if defErr, ok := err.(*Error); ok {
		return defErr
	}

	return defaultErr.More(err.Error())
}

func (t *Error) Error() string {
	return fmt.Sprintf("Err:%d-%d-%s", t.Status, t.Code, t.Msg)
}

func (t *Error) More(format string, args ...interface{}) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	return &Error{t.Status, t.Code, t.Msg + "+" + msg}
}

func (t *Error) Equal(rhs *Error) bool {
	if rhs == nil {
		return false
	}

	return t.Code == rhs.Code
}

// define std error
// 预留xxx9xx的错误码给上层业务扩展用，这里不要使用xxx9xx的错误码
var (
	ErrUnknown   = &Error{ErrStatusInternalErr, 50001, "unknown error"}
	ErrParameter = &Error{ErrStatusRefused, 40001, "param error"}

	// engine
	ErrNotEngineType     = &Error{ErrStatusRefused, 40010, "transfer engine type failed"}
	ErrLoadEngConfFailed = &Error{ErrStatusInternalErr, 50006, "load engine config failed"}
	ErrNewLogFailed      = &Error{ErrStatusInternalErr, 50006, "new logger failed"}

	// chain
	ErrNewChainCtxFailed = &Error{ErrStatusInternalErr, 50011, "new chain context failed"}
	ErrOpenStateFailed   = &Error{ErrStatusInternalErr, 50012, "open state failed"}
)
