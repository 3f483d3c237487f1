package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"PortfolioAnalyzer/internal/analyzer"
	"PortfolioAnalyzer/internal/session"
)

// APIResponse represents standard API response.
type APIResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AppError is a client-facing error body.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DataResponse writes the envelope with the real HTTP status.
func DataResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, APIResponse{
		Status:  statusCode,
		Message: http.StatusText(statusCode),
		Data:    data,
	})
}

// SuccessResponse writes success response.
func SuccessResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusOK, data)
}

// BadRequestResponse writes bad request error.
func BadRequestResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusBadRequest, data)
}

// ErrorResponse maps analyzer errors onto HTTP statuses. fetchMessage is the
// user-facing text for market data failures.
func ErrorResponse(c echo.Context, err error, fetchMessage string) error {
	switch {
	case errors.Is(err, session.ErrBusy):
		return DataResponse(c, http.StatusConflict, []AppError{{
			Code: "ERR_BUSY", Message: "another analysis is in progress",
		}})
	case errors.Is(err, analyzer.ErrFetch):
		return DataResponse(c, http.StatusBadGateway, []AppError{{
			Code: "ERR_FETCH", Message: fetchMessage,
		}})
	default:
		return DataResponse(c, http.StatusInternalServerError, []AppError{{
			Code: "ERR_INTERNAL", Message: "Something went wrong",
		}})
	}
}
