package echoServer

import (
	"net/http"

	"pageflow/app/echoServer/controller/auth"
	"pageflow/app/echoServer/controller/book"
	"pageflow/app/echoServer/controller/chat"
	"pageflow/app/echoServer/controller/checkout"
	"pageflow/app/echoServer/controller/review"
	"pageflow/app/echoServer/jwtx"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Book      *book.Controller
	Checkout  *checkout.Controller
	Review    *review.Controller
	Chat      *chat.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)
	pub.POST("/chat", c.Chat.Message)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// user_id extraction
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", uid)
			return next(ctx)
		}
	})

	// Books
	auth.GET("/books", c.Book.List)
	auth.GET("/books/:id", c.Book.Detail)
	auth.POST("/books", c.Book.Create)

	// Reviews
	auth.POST("/books/:id/reviews", c.Review.Create)
	auth.GET("/books/:id/reviews", c.Review.ListByBook)

	// Checkouts
	auth.POST("/checkouts", c.Checkout.Create)
	auth.POST("/checkouts/:id/return", c.Checkout.Return)
	auth.GET("/checkouts/my", c.Checkout.My)
	auth.GET("/checkouts/active", c.Checkout.Active)
	auth.GET("/checkouts/overdue", c.Checkout.Overdue)
	auth.GET("/checkouts/:id", c.Checkout.Detail)
}
