// Package main episode rental API.
//
// @title           Mandalorian Rental API
// @version         1.0
// @description     Episode catalog with reserve/confirm lifecycle and lazy expiry.
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/mirkojp/mandalorian-rental/app/echoServer"
	episodectrl "github.com/mirkojp/mandalorian-rental/app/echoServer/controller/episode"
	"github.com/mirkojp/mandalorian-rental/app/echoServer/validation"
	"github.com/mirkojp/mandalorian-rental/config"
	"github.com/mirkojp/mandalorian-rental/model"
	episoderepo "github.com/mirkojp/mandalorian-rental/repository/episode"
	episodesvc "github.com/mirkojp/mandalorian-rental/service/episode"
	"github.com/mirkojp/mandalorian-rental/util/kvstore"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// store: shared Redis client
	rdb := kvstore.New(cfg.RedisAddr)
	defer rdb.Close()

	// repos
	er := episoderepo.New(rdb)

	// Seed wipes the store and must run exactly once, at startup. A store
	// outage here is loud but not fatal: commands fail 500 until Redis is
	// back and the client reconnects on its own.
	if err := kvstore.Ping(ctx, rdb); err != nil {
		log.Error("redis unreachable at startup, catalog not seeded", "addr", cfg.RedisAddr, "err", err)
	} else if err := er.Seed(ctx, model.Catalog()); err != nil {
		log.Error("catalog seed failed", "err", err)
	} else {
		log.Info("catalog seeded", "episodes", len(model.Catalog()))
	}

	// services
	es := episodesvc.New(er, episodesvc.Config{
		ReserveTTL: cfg.ReserveTTL,
		RentTTL:    cfg.RentTTL,
		Price:      cfg.RentalPrice,
	})

	// controllers
	v := validator.New()
	episodeC := &episodectrl.Controller{Svc: es, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Static("/", "public")

	echoServer.Register(e, echoServer.C{
		Episode: episodeC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "3000"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
