package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/utils"
)

func ReceiptLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() == 200 {
			utils.InfoLogger.Printf("Receipt %s rendered", c.Param("receipt_id"))
		} else {
			utils.ErrorLogger.Printf("Failed to render receipt %s (status %d)", c.Param("receipt_id"), c.Writer.Status())
		}
	}
}
