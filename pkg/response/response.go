package response

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	apperrors "wardrobe101/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorBody matches the marketplace contract: clients read "detail".
type ErrorBody struct {
	Detail string                   `json:"detail"`
	Code   string                   `json:"code"`
	Fields []apperrors.FieldProblem `json:"fields,omitempty"`
}

// Success writes data as the raw JSON body. The marketplace API does not wrap payloads.
func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

// Paginated writes the page items and exposes the total in a header so the body stays an array.
func Paginated(c echo.Context, items interface{}, total int64) error {
	c.Response().Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, items)
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, ErrorBody{
			Detail: appErr.Message,
			Code:   appErr.Code,
			Fields: appErr.Problems,
		})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, _ := httpErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorBody{Detail: msg, Code: codeForStatus(httpErr.Code)})
	}

	return c.JSON(http.StatusInternalServerError, ErrorBody{
		Detail: "An unexpected error occurred",
		Code:   apperrors.CodeInternal,
	})
}

func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	problems := make([]apperrors.FieldProblem, 0, len(validationErr))
	for _, err := range validationErr {
		field := strings.ToLower(err.Field())
		param := err.Param()

		var reason string
		switch err.Tag() {
		case "required":
			reason = "is required"
		case "min":
			reason = "must be at least " + param
		case "max":
			reason = "must be at most " + param
		case "gte":
			reason = "must be greater than or equal to " + param
		case "oneof":
			reason = "must be one of: " + param
		case "email":
			reason = "must be a valid email address"
		default:
			reason = "is invalid"
		}
		problems = append(problems, apperrors.FieldProblem{Field: field, Reason: reason})
	}

	appErr := apperrors.Validation(problems...)
	return c.JSON(http.StatusBadRequest, ErrorBody{
		Detail: appErr.Message,
		Code:   appErr.Code,
		Fields: problems,
	})
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return apperrors.CodeBadRequest
	case http.StatusUnauthorized:
		return apperrors.CodeUnauthorized
	case http.StatusForbidden:
		return apperrors.CodeForbidden
	case http.StatusNotFound:
		return apperrors.CodeNotFound
	case http.StatusConflict:
		return apperrors.CodeConflict
	case http.StatusTooManyRequests:
		return apperrors.CodeTooManyRequests
	default:
		return apperrors.CodeInternal
	}
}
