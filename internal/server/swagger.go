package server

import (
	_ "github.com/Kaizen-Gym/Managment-System--Backend/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupSwagger registers Swagger UI routes.
func SetupSwagger(r gin.IRoutes) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
