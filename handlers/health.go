package handlers

import (
	"fmt"
	"net/http"
	"time"

	"gamecatalog/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// isoMillis matches the timestamp shape the storefront already parses.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Health is a liveness probe; it does not touch the database.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(isoMillis),
	})
}

// NotFound answers every unmatched route.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   "Route not found",
	})
}

// Recovery turns a panic into a 500 envelope. The panic value is only
// returned to the client when exposeMessage is set.
func Recovery(exposeMessage bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		message := fmt.Sprint(recovered)
		utils.Log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"panic":  message,
		}).Error("Server error")

		body := gin.H{
			"success": false,
			"error":   "Internal server error",
		}
		if exposeMessage {
			body["message"] = message
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}
