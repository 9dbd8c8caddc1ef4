package http

import "github.com/gin-gonic/gin"

const (
	ServiceName = "warranty-service"

	msgInternalError = "Internal server error"
	msgOrderIDNeeded = "Order ID is required"
	msgProducts      = "Products fetched"
	msgClaimCreated  = "Warranty claim created"
)

func errorBody(msg string) gin.H {
	return gin.H{"success": false, "error": msg}
}

func internalErrorBody() gin.H {
	return errorBody(msgInternalError)
}
