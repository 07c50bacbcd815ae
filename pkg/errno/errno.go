package errno

import (
	"errors"
	"fmt"
)

const (
	SuccessCode      = 200
	CreatedCode      = 201
	RequestErrCode   = 400
	AuthFailedCode   = 401
	ForbiddenErrCode = 403
	NotFoundErrCode  = 404
	ConflictErrCode  = 409
	ServiceErrCode   = 500
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

// WithMessage keeps the code and swaps the message.
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success       = NewErrNo(SuccessCode, "Success")
	Created       = NewErrNo(CreatedCode, "Created")
	RequestErr    = NewErrNo(RequestErrCode, "Invalid request")
	AuthFailedErr = NewErrNo(AuthFailedCode, "User not authenticated")
	ForbiddenErr  = NewErrNo(ForbiddenErrCode, "Operation not allowed")
	NotFoundErr   = NewErrNo(NotFoundErrCode, "Record not found")
	ConflictErr   = NewErrNo(ConflictErrCode, "Record already exists")
	ServiceErr    = NewErrNo(ServiceErrCode, "Service internal error")
	UploadErr     = NewErrNo(ServiceErrCode, "Upload to object storage failed")
)

// ConvertErr converts a plain error into an ErrNo. Explicitly raised domain
// errors keep their code and message; anything unrecognized collapses to
// ServiceErr with a generic message, the cause is for logs only.
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	e := ErrNo{}
	if errors.As(err, &e) {
		return e
	}
	return ServiceErr
}
