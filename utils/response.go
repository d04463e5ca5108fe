package utils

import "github.com/gin-gonic/gin"

// JSONError writes the API error body {"error": message}.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}
