package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Extras  any  `json:"extras"`
}

func NewResponse(success bool, code int, extras any) Response {
	return Response{
		Success: success,
		Code:    code,
		Extras:  extras,
	}
}

// SuccessResponse returns a 200 JSON envelope around extras
func SuccessResponse(c *gin.Context, extras any) {
	c.JSON(http.StatusOK, NewResponse(true, http.StatusOK, extras))
}

// ErrorResponse returns a JSON envelope with code as both HTTP status and body code
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, NewResponse(false, code, gin.H{"message": message}))
}
