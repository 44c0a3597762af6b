package httpserver

import (
	"io/fs"
	"net/http"
	"time"

	"budget-app-go/internal/transport/httpserver/handler"
	"budget-app-go/internal/transport/httpserver/middleware"
	"budget-app-go/internal/transport/httpserver/web"
	"budget-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handlers *handler.Handlers, log logger.Logger) (http.Handler, error) {
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(handlers.Sessions.Load)

	r.Get("/health", handlers.Health)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/login", handlers.LoginPage)
	r.Post("/login", handlers.Login)
	r.Get("/register", handlers.RegisterPage)
	r.Post("/register", handlers.Register)
	r.Get("/logout", handlers.Logout)
	r.Post("/logout", handlers.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Get("/", handlers.Index)
		r.Post("/transactions", handlers.CreateTransaction)
		r.Get("/transactions/{id}/edit", handlers.EditTransaction)
		r.Post("/transactions/{id}", handlers.UpdateTransaction)
		r.Post("/transactions/{id}/delete", handlers.DeleteTransaction)

		r.Get("/categories", handlers.ListCategories)
		r.Post("/categories", handlers.CreateCategory)
		r.Post("/categories/{id}/delete", handlers.DeleteCategory)
		r.Post("/categories/{id}/subcategories", handlers.CreateSubCategory)
		r.Post("/subcategories/{id}/delete", handlers.DeleteSubCategory)

		r.Get("/circles", handlers.ListCircles)
		r.Post("/circles", handlers.CreateCircle)
		r.Post("/circles/{id}/delete", handlers.DeleteCircle)
		r.Post("/circles/{id}/members", handlers.AddMember)
		r.Post("/circles/{id}/members/{user_id}/delete", handlers.RemoveMember)

		r.Get("/goals", handlers.ListGoals)
		r.Post("/goals", handlers.CreateGoal)
		r.Post("/goals/{id}/delete", handlers.DeleteGoal)
	})

	log.Debug("httpserver: routes registered")
	return r, nil
}
