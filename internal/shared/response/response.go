package response

import (
	"github.com/gin-gonic/gin"
)

// Every endpoint answers the same envelope: {"ok": true, ...payload} on
// success with payload keys merged at the top level (user, employee, leave,
// leave_types, ...), and {"ok": false, "error": CODE} on failure.

func Success(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func Error(c *gin.Context, status int, errorCode string, message string) {
	body := gin.H{
		"ok":    false,
		"error": errorCode,
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// SoftError mirrors the legacy update endpoints: a business no-op answered
// with HTTP 200 and ok:false plus a plain error string.
func SoftError(c *gin.Context, message string) {
	c.JSON(200, gin.H{
		"ok":    false,
		"error": message,
	})
}
