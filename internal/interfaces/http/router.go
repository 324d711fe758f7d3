package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-movil/internal/application/auth"
	"github.com/tu-usuario/tienda-movil/internal/application/ports"
	"github.com/tu-usuario/tienda-movil/internal/application/usecase"
	"github.com/tu-usuario/tienda-movil/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	ProductUC *usecase.ProductUseCase
	Provider  ports.IdentityProvider
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Provider)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/google", authHandler.GoogleLogin)

	// Sesión (requiere Bearer Token). El token habilita el acceso; la cuenta
	// sobre la que actúan estas rutas es la del slot de sesión del proceso.
	session := authGroup.Group("/", AuthMiddleware(deps.JWTSecret))
	session.Post("/logout", authHandler.Logout)
	session.Get("/me", authHandler.Me)
	session.Put("/profile", authHandler.UpdateProfile)
	session.Delete("/account", authHandler.DeleteAccount)

	// Catálogo (protegido; escritura solo para administradores)
	products := api.Group("/products", AuthMiddleware(deps.JWTSecret))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	admin := RequireRole(entity.RoleAdministrador)
	products.Post("/", admin, productHandler.Create)
	products.Put("/:id", admin, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)
}
