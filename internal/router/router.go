package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/momentumapp/momentum-lambda/internal/auth"
	"github.com/momentumapp/momentum-lambda/internal/goal"
	"github.com/momentumapp/momentum-lambda/internal/journal"
	"github.com/momentumapp/momentum-lambda/internal/middlewares"
	"github.com/momentumapp/momentum-lambda/internal/share"
	"github.com/momentumapp/momentum-lambda/internal/user"
)

type RouterConfig struct {
	UserHandler    *user.Handler
	GoalHandler    *goal.Handler
	JournalHandler *journal.Handler
	ShareHandler   *share.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", cfg.UserHandler.GoogleLogin)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/goals", goal.Routes(cfg.GoalHandler))
		r.Mount("/journal", journal.Routes(cfg.JournalHandler))
		r.Mount("/shares", share.Routes(cfg.ShareHandler))
	})
	return r
}
