package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// serverError logs the cause and answers with the fixed user-facing message.
// Backend error text never reaches the response body.
func serverError(c *gin.Context, message string, err error) {
	log.Printf("%s: %v", message, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": message,
	})
}
