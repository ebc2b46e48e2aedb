package config

import "time"

type App struct {
	Port        string        `env:"APP_PORT" default:"3000"`
	RedisAddr   string        `env:"REDIS_ADDR" default:"localhost:6379"`
	ReserveTTL  time.Duration `env:"RESERVE_TTL" default:"60s"`
	RentTTL     time.Duration `env:"RENT_TTL" default:"60s"`
	RentalPrice float64       `env:"RENTAL_PRICE" default:"4.99"`
	Env         string        `env:"APP_ENV" default:"dev"`
}
