package helpers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash queues a one-shot notice for the next rendered page.
func Flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	_ = session.Save()
}

// Flashes drains and returns the queued notices.
func Flashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) > 0 {
		_ = session.Save()
	}
	messages := make([]string, 0, len(raw))
	for _, entry := range raw {
		if message, ok := entry.(string); ok {
			messages = append(messages, message)
		}
	}
	return messages
}
