package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// ErrNoPermission is returned when a role may not use an endpoint.
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var statusByError = []struct {
	err    error
	status int
}{
	{services.ErrTableNotFound, http.StatusNotFound},
	{services.ErrItemNotFound, http.StatusNotFound},
	{services.ErrMenuItemNotFound, http.StatusNotFound},
	{services.ErrOptionNotFound, http.StatusNotFound},
	{services.ErrCustomerNotFound, http.StatusNotFound},
	{services.ErrOrderNotFound, http.StatusNotFound},
	{services.ErrDuplicatePhone, http.StatusConflict},
	{services.ErrInvalidTransition, http.StatusConflict},
	{services.ErrOrderNotActive, http.StatusConflict},
	{services.ErrPaymentState, http.StatusConflict},
	{services.ErrPaymentInProgress, http.StatusConflict},
	{services.ErrEmptyCart, http.StatusConflict},
	{services.ErrInvalidPrice, http.StatusBadRequest},
	{services.ErrInvalidDiscount, http.StatusBadRequest},
	{services.ErrInvalidCustomer, http.StatusBadRequest},
	{services.ErrInvalidMethod, http.StatusBadRequest},
	{services.ErrInsufficientTender, http.StatusBadRequest},
	{services.ErrInvalidSplit, http.StatusBadRequest},
	{services.ErrUnknownAction, http.StatusBadRequest},
}

// StatusFor maps a service error to an HTTP status code.
func StatusFor(err error) int {
	var custom *CustomError
	if errors.As(err, &custom) {
		return http.StatusForbidden
	}
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

func respondServiceError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		utils.ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	utils.RespondError(c, status, err)
}
