package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the envelope for every JSON body the API returns
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// set by middleware.RequestID
const requestIDKey = "RequestID"

func write(c *gin.Context, code int, body Response) {
	body.RequestID = c.GetString(requestIDKey)
	c.JSON(code, body)
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	write(c, code, Response{Success: true, Message: message, Data: data})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	write(c, code, Response{Success: false, Message: message, Error: err})
}
