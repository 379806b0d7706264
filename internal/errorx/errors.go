package errorx

import (
	"context"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// CodeError is an error with an HTTP status code attached.
type CodeError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *CodeError) Error() string {
	return e.Msg
}

// NewCodeError creates an error carrying an explicit status code.
func NewCodeError(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

// ErrNotFound reports a missing resource.
func ErrNotFound(msg string) *CodeError {
	return NewCodeError(http.StatusNotFound, msg)
}

// ErrBadRequest reports an invalid request.
func ErrBadRequest(msg string) *CodeError {
	return NewCodeError(http.StatusBadRequest, msg)
}

// ErrInternal reports a server-side failure.
func ErrInternal(msg string) *CodeError {
	return NewCodeError(http.StatusInternalServerError, msg)
}

// ErrUnavailable reports a missing runtime dependency, such as the
// ImageMagick binary not being installed on the host.
func ErrUnavailable(msg string) *CodeError {
	return NewCodeError(http.StatusServiceUnavailable, msg)
}

// RegisterErrorHandler installs the CodeError-aware error handler.
func RegisterErrorHandler() {
	httpx.SetErrorHandlerCtx(func(ctx context.Context, err error) (int, any) {
		switch e := err.(type) {
		case *CodeError:
			return e.Code, e
		default:
			logx.WithContext(ctx).Errorf("internal error: %v", err)
			return http.StatusInternalServerError, &CodeError{
				Code: http.StatusInternalServerError,
				Msg:  "internal server error",
			}
		}
	})
}
