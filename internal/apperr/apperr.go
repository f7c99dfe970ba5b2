// Package apperr defines the typed failures surfaced by the service layer.
// Each failure carries a stable machine-readable code and a human-readable
// message with the offending value, so callers branch on the code and
// clients get diagnosable output.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeInvalidLoginRequest    Code = "invalid_login_request"
	CodeInvalidCredentials     Code = "invalid_credentials"
	CodeInvalidToken           Code = "invalid_token"
	CodeNoSuchMember           Code = "no_such_member"
	CodeNoSuchCoupon           Code = "no_such_coupon"
	CodeAlreadyExists          Code = "already_exists"
	CodeNonExistingCategory    Code = "non_existing_category"
	CodeInvalidPrice           Code = "invalid_price"
	CodeCouponAlreadyPurchased Code = "coupon_already_purchased"
	CodeZeroCouponAmount       Code = "zero_coupon_amount"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is makes two apperr values equal under errors.Is when the codes match,
// so sentinel-style comparisons work without shared instances.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsCode reports whether err is an apperr with the given code.
func IsCode(err error, code Code) bool {
	var ae *Error
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Code == code
}

// CodeOf extracts the machine code from err, or "" if err is not an apperr.
func CodeOf(err error) Code {
	var ae *Error
	if !errors.As(err, &ae) {
		return ""
	}
	return ae.Code
}
