package router

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/golang/glog"

	"sarvasva/internal/qerrors"
)

// ErrResponse is the body of every failed request.
type ErrResponse struct {
	Message string `json:"message"`
}

// MessageResponse acknowledges a request that has nothing else to return.
type MessageResponse struct {
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// writeError responds with the status mapped from err and a {message} body. Internal errors are
// logged and their details kept from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := qerrors.HTTPStatus(err)

	message := "internal server error"
	var qe *qerrors.Error
	if errors.As(err, &qe) {
		message = qe.Message
	}
	if status == http.StatusInternalServerError {
		glog.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	}

	render.Status(r, status)
	render.JSON(w, r, ErrResponse{Message: message})
}

// decodeRequest reads the JSON body into v and validates it. With allowEmpty an empty body leaves v
// untouched.
func decodeRequest(r *http.Request, v interface{}, allowEmpty bool) error {
	err := render.DecodeJSON(r.Body, v)
	if errors.Is(err, io.EOF) && allowEmpty {
		err = nil
	}
	if err != nil {
		return qerrors.NewValidationError(fmt.Sprintf("invalid request body: %v", err))
	}

	if reflect.Indirect(reflect.ValueOf(v)).Kind() != reflect.Struct {
		return nil
	}
	return validateRequest(v)
}

func validateRequest(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return qerrors.NewValidationError(err.Error())
	}

	fe := fieldErrors[0]
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return qerrors.NewValidationError(fmt.Sprintf("%s is required", field))
	case "min":
		return qerrors.NewValidationError(fmt.Sprintf("%s must have at least %s item(s)", field, fe.Param()))
	default:
		return qerrors.NewValidationError(fmt.Sprintf("%s is invalid (%s)", field, fe.Tag()))
	}
}

// fieldPath drops the request type from the namespace, e.g. "questions[0].question".
func fieldPath(fe validator.FieldError) string {
	parts := strings.SplitN(fe.Namespace(), ".", 2)
	if len(parts) < 2 {
		return fe.Field()
	}
	return parts[1]
}
