package middleware

import "github.com/gin-gonic/gin"

// contextKey is the type of every value this package stores in a context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerKey    = contextKey("logger")
	loggerCtxKey = contextKey("requestLogger")
	// subjectKey holds the authenticated caller (the token subject).
	subjectKey = contextKey("subject")
)

// GetSubjectFromContext retrieves the authenticated caller from the Gin context.
// It returns the subject and a boolean indicating if it was found.
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	if subject, ok := c.Request.Context().Value(subjectKey).(string); ok && subject != "" {
		return subject, true
	}
	subjectVal, exists := c.Get(string(subjectKey))
	if !exists {
		return "", false
	}
	subject, ok := subjectVal.(string)
	return subject, ok
}
