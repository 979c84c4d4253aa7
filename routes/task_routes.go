package routes

import (
	"github.com/anjiri1684/taskmate/handlers"
	"github.com/anjiri1684/taskmate/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func TaskRoutes(app *fiber.App) {
	tasks := app.Group("/api/v1/tasks", middleware.Protected()...)
	tasks.Get("", handlers.ListTasks)
	tasks.Post("", handlers.CreateTask)
	tasks.Get("/:taskId", handlers.GetTask)
	tasks.Patch("/:taskId", handlers.UpdateTask)
	tasks.Delete("/:taskId", handlers.DeleteTask)
}

// EventRoutes exposes live task events. Authentication happens on the first frame.
func EventRoutes(app *fiber.App) {
	api := app.Group("/api/v1")
	api.Use("/ws", requireUpgrade)
	api.Get("/ws", websocket.New(handlers.ServeEventsWs))
}
