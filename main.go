// Package main PageFlow API.
//
// @title           PageFlow Library API
// @version         1.0
// @description     library service (books, checkouts, reviews, chat assistant).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"pageflow/app/echoServer"
	authctrl "pageflow/app/echoServer/controller/auth"
	bookctrl "pageflow/app/echoServer/controller/book"
	chatctrl "pageflow/app/echoServer/controller/chat"
	checkoutctrl "pageflow/app/echoServer/controller/checkout"
	reviewctrl "pageflow/app/echoServer/controller/review"
	"pageflow/app/echoServer/validation"
	"pageflow/config"
	bookrepo "pageflow/repository/book"
	checkoutrepo "pageflow/repository/checkout"
	reviewrepo "pageflow/repository/review"
	userrepo "pageflow/repository/user"
	authsvc "pageflow/service/auth"
	booksvc "pageflow/service/book"
	chatsvc "pageflow/service/chat"
	checkoutsvc "pageflow/service/checkout"
	reviewsvc "pageflow/service/review"
	"pageflow/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	br := bookrepo.New(db.DB)
	cr := checkoutrepo.New(db.DB)
	rr := reviewrepo.New(db.DB)
	ur := userrepo.New(db.DB)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	bs := booksvc.New(br)
	cs := checkoutsvc.New(db, br, cr, log)
	sw := checkoutsvc.NewSweeper(cr, log)
	go sw.Run(ctx, time.Hour)
	rs := reviewsvc.New(rr)
	chs := chatsvc.New(br, rand.New(rand.NewSource(time.Now().UnixNano())), log)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	checkoutC := &checkoutctrl.Controller{Svc: cs, Sw: sw, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: rs, V: v, Log: log}
	chatC := &chatctrl.Controller{Svc: chs}

	// echo
	e := echo.New()
	rps, err := strconv.ParseFloat(cfg.RateRPS, 64)
	if err != nil || rps <= 0 {
		rps = 20
	}
	echoServer.RegisterMiddlewares(e, rps)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Book:      bookC,
		Checkout:  checkoutC,
		Review:    reviewC,
		Chat:      chatC,
		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
