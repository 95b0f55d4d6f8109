package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResponseErr is the error body shape for every failed request.
type ResponseErr struct {
	Error string `json:"error"`
}

// WithRepJSON writes a success body.
func WithRepJSON(c *gin.Context, detail any) {
	c.JSON(http.StatusOK, detail)
}

// WithRepErr writes the code's default message.
func WithRepErr(c *gin.Context, code Code) {
	c.AbortWithStatusJSON(code.Status, ResponseErr{Error: code.Msg})
}

// WithRepErrMsg writes the code's status with a specific message.
func WithRepErrMsg(c *gin.Context, code Code, msg string) {
	if msg == "" {
		msg = code.Msg
	}
	c.AbortWithStatusJSON(code.Status, ResponseErr{Error: msg})
}
