package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zen-techno/zen/internal/config"
	authsvc "github.com/zen-techno/zen/internal/services/auth"
	categoriessvc "github.com/zen-techno/zen/internal/services/categories"
	expensessvc "github.com/zen-techno/zen/internal/services/expenses"
	userssvc "github.com/zen-techno/zen/internal/services/users"
	"github.com/zen-techno/zen/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService     *authsvc.Service
	UserService     *userssvc.Service
	CategoryService *categoriessvc.Service
	ExpenseService  *expensessvc.Service
	Logger          *zap.Logger
	Config          config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	userHandler := handlers.NewUserHandler(deps.UserService)
	categoryHandler := handlers.NewCategoryHandler(deps.CategoryService)
	expenseHandler := handlers.NewExpenseHandler(deps.ExpenseService)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)

	r.Get("/health", healthHandler.Get)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.With(authMW).Post("/logout", authHandler.Logout)
			r.With(authMW).Get("/me", authHandler.Me)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authMW)
			r.Get("/", userHandler.List)

			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", userHandler.Get)
				r.Put("/", userHandler.Update)
				r.Delete("/", userHandler.Delete)

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", categoryHandler.List)
					r.Post("/", categoryHandler.Create)

					r.Route("/{categoryID}", func(r chi.Router) {
						r.Get("/", categoryHandler.Get)
						r.Put("/", categoryHandler.Update)
						r.Delete("/", categoryHandler.Delete)

						r.Route("/expenses", func(r chi.Router) {
							r.Get("/", expenseHandler.List)
							r.Post("/", expenseHandler.Create)

							r.Route("/{expenseID}", func(r chi.Router) {
								r.Get("/", expenseHandler.Get)
								r.Put("/", expenseHandler.Update)
								r.Delete("/", expenseHandler.Delete)
							})
						})
					})
				})
			})
		})
	})
}
