package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"labBooker/internal/models"
)

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Code   string `json:"code,omitempty"`
}

// ConflictResponse lists the bookings that collide with the requested window.
type ConflictResponse struct {
	Response
	Conflicts []models.BookingSummary `json:"conflicts"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

func OK() Response {
	return Response{
		Status: StatusOK,
	}
}

func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

func ErrorWithCode(msg, code string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
		Code:   code,
	}
}

func Conflict(msg string, conflicts []models.BookingSummary) ConflictResponse {
	if conflicts == nil {
		conflicts = []models.BookingSummary{}
	}

	return ConflictResponse{
		Response:  Error(msg),
		Conflicts: conflicts,
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not a valid email", err.Field()))
		case "min":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must have at least %s item(s)", err.Field(), err.Param()))
		case "oneof":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must be one of [%s]", err.Field(), err.Param()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMsgs, ", "),
	}
}
