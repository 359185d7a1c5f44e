package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-tracker/internal/services"
)

var errInvalidRequestBody = errors.New("invalid request body")

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newConflictError(message string) apiError {
	return newAPIError(http.StatusConflict, message)
}

// newServiceError maps a service error onto its response. Only sentinel
// texts reach the client; wrapped store details are dropped.
func newServiceError(err error) apiError {
	switch {
	case errors.Is(err, services.ErrNoToken):
		return newUnauthorizedError(services.ErrNoToken.Error())
	case errors.Is(err, services.ErrInvalidToken):
		return newUnauthorizedError(services.ErrInvalidToken.Error())
	case errors.Is(err, services.ErrUserNotFound):
		return newUnauthorizedError(services.ErrUserNotFound.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return newBadRequestError(services.ErrInvalidCredentials.Error())
	case errors.Is(err, services.ErrUserAlreadyExists):
		return newConflictError(services.ErrUserAlreadyExists.Error())
	case errors.Is(err, services.ErrEmptyTaskName):
		return newBadRequestError(services.ErrEmptyTaskName.Error())
	case errors.Is(err, services.ErrValidationFailed):
		return newBadRequestError(services.ErrValidationFailed.Error())
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}
