package routes

import (
    "backend/controllers"
    "backend/middlewares"

    "github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
    r := gin.Default()

    // Public auth routes
    auth := r.Group("/auth")
    {
        auth.POST("/register", controllers.Register)
        auth.POST("/login", controllers.Login)
    }

    // Protected routes
    api := r.Group("/")
    api.Use(middlewares.AuthMiddleware())
    {
        api.POST("/auth/logout", controllers.Logout)

        api.GET("/food/search", controllers.SearchFoods)
        api.GET("/food/frequent", controllers.FrequentFoods)
        api.GET("/food/:id", controllers.GetFood)

        api.POST("/food/log", controllers.LogFood)
        api.PUT("/food/log/:id", controllers.UpdateLog)
        api.DELETE("/food/log/:id", controllers.DeleteLog)

        api.GET("/day", controllers.GetDay)
        api.POST("/calendar", controllers.SetDate)
        api.POST("/day-change", controllers.ChangeDay)
    }

    return r
}
