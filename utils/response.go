package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rooluDev/goboard/apperr"
)

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, 200, 0, "success", data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// Fail maps a tagged service error onto the response envelope. Unclassified
// errors are reported as internal server errors without leaking the detail.
func Fail(ctx *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status, code := statusOf(kind)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		if Sugar != nil {
			Sugar.Errorw("request failed", "path", ctx.Request.URL.Path, "error", err)
		}
		msg = "internal server error"
	}
	Respond(ctx, status, code, msg, gin.H{"kind": kind.String()})
}

func statusOf(kind apperr.Kind) (int, int) {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest, 40001
	case apperr.KindFileUpload:
		return http.StatusBadRequest, 40002
	case apperr.KindAuthentication:
		return http.StatusUnauthorized, 40101
	case apperr.KindNotFound:
		return http.StatusNotFound, 40401
	case apperr.KindStorageIO:
		return http.StatusInternalServerError, 50001
	case apperr.KindPersistence:
		return http.StatusInternalServerError, 50002
	default:
		return http.StatusInternalServerError, 50000
	}
}
