package echoServer

import (
	"github.com/labstack/echo/v4"

	"github.com/mirkojp/mandalorian-rental/app/echoServer/controller/episode"
)

type C struct {
	Episode *episode.Controller
}

func Register(e *echo.Echo, c C) {
	api := e.Group("/api")

	api.GET("/episodes", c.Episode.List)
	api.GET("/episodes/:id", c.Episode.Detail)
	api.POST("/reserve/:id", c.Episode.Reserve)
	api.POST("/confirm/:id", c.Episode.Confirm)
}
