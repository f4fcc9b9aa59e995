package errno

import (
	"errors"
	"fmt"
)

const (
	SuccessCode          = 0
	ServiceErrCode       = 10001
	ParamErrCode         = 10002
	AuthorizationErrCode = 10003
	ForbiddenErrCode     = 10004
	NotFoundErrCode      = 10005
	ConflictErrCode      = 10006
	InvalidOperationCode = 10007
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{ErrCode: code, ErrMsg: msg}
}

// WithMessage keeps the code and replaces the message.
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success = NewErrNo(SuccessCode, "success")

	// ServiceErr covers storage and infrastructure failures. The raw cause
	// is logged, never sent to the client.
	ServiceErr = NewErrNo(ServiceErrCode, "internal server error")

	ParamErr            = NewErrNo(ParamErrCode, "invalid parameter")
	AuthorizationErr    = NewErrNo(AuthorizationErrCode, "authorization failed")
	ForbiddenErr        = NewErrNo(ForbiddenErrCode, "not authorized to perform this action")
	NotFoundErr         = NewErrNo(NotFoundErrCode, "resource not found")
	ConflictErr         = NewErrNo(ConflictErrCode, "resource already exists")
	InvalidOperationErr = NewErrNo(InvalidOperationCode, "invalid operation")
)

// ConvertErr normalizes any error into an ErrNo. Unknown errors collapse
// into ServiceErr so internal detail never leaks through the envelope.
func ConvertErr(err error) ErrNo {
	var errNo ErrNo
	if errors.As(err, &errNo) {
		return errNo
	}
	return ServiceErr
}

// HTTPStatus maps an error code onto the HTTP status used by the API layer.
func HTTPStatus(code int64) int {
	switch code {
	case SuccessCode:
		return 200
	case ParamErrCode, InvalidOperationCode:
		return 400
	case ConflictErrCode:
		return 409
	case AuthorizationErrCode:
		return 401
	case ForbiddenErrCode:
		return 403
	case NotFoundErrCode:
		return 404
	default:
		return 500
	}
}
