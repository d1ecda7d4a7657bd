package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"estoque/internal/api/brand"
	"estoque/internal/api/movement"
	"estoque/internal/api/product"
	"estoque/internal/api/system"
	"estoque/internal/api/user"
	"estoque/internal/domain"
	"estoque/internal/pkg/logger"
	"estoque/internal/pkg/middleware"
)

// Handlers reúne os Handlers já inicializados por injeção de dependências.
type Handlers struct {
	Product  *product.Handler
	Brand    *brand.Handler
	Movement *movement.Handler
	User     *user.Handler
	System   *system.Handler
}

// Auth reúne o necessário para autenticar e autorizar as rotas protegidas.
type Auth struct {
	Tokens      middleware.TokenService
	Revocations middleware.RevocationChecker
}

var (
	anyRole     = []domain.UserRole{domain.RoleAdmin, domain.RoleManager, domain.RoleOperator}
	managers    = []domain.UserRole{domain.RoleAdmin, domain.RoleManager}
	adminsOnly  = []domain.UserRole{domain.RoleAdmin}
	authedEmpty []domain.UserRole
)

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, auth Auth, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	authenticate := middleware.NewAuthMiddleware(auth.Tokens, auth.Revocations, log)
	protect := func(roles []domain.UserRole, next http.HandlerFunc) http.HandlerFunc {
		return authenticate(middleware.PermissionMiddleware(log, roles...)(next))
	}

	// --- Health check e documentação ---
	mux.HandleFunc("GET /ping", system.PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- Conta ---
	mux.HandleFunc("POST /v1/login", h.User.LoginUserHandler)
	mux.HandleFunc("POST /v1/register", h.User.RegisterUserHandler)
	mux.HandleFunc("POST /v1/logout", protect(authedEmpty, h.User.LogoutHandler))
	mux.HandleFunc("GET /v1/me", protect(authedEmpty, h.User.MeHandler))

	// --- Administração de usuários ---
	mux.HandleFunc("GET /v1/users", protect(adminsOnly, h.User.ListUsersHandler))
	mux.HandleFunc("POST /v1/users", protect(adminsOnly, h.User.CreateUserHandler))
	mux.HandleFunc("GET /v1/users/{id}", protect(adminsOnly, h.User.GetUserHandler))
	mux.HandleFunc("PUT /v1/users/{id}", protect(adminsOnly, h.User.UpdateUserHandler))
	mux.HandleFunc("DELETE /v1/users/{id}", protect(adminsOnly, h.User.DeleteUserHandler))

	// --- Produtos ---
	mux.HandleFunc("GET /v1/produtos", protect(anyRole, h.Product.ListProductsHandler))
	mux.HandleFunc("POST /v1/produtos", protect(anyRole, h.Product.CreateProductHandler))
	mux.HandleFunc("GET /v1/produtos/{id}", protect(anyRole, h.Product.GetProductByIDHandler))
	mux.HandleFunc("PUT /v1/produtos/{id}", protect(managers, h.Product.UpdateProductHandler))
	mux.HandleFunc("DELETE /v1/produtos/{id}", protect(managers, h.Product.DeleteProductHandler))
	mux.HandleFunc("GET /v1/produtos/{id}/historico", protect(authedEmpty, h.Product.ProductHistoryHandler))

	// --- Marcas ---
	mux.HandleFunc("GET /v1/marcas", protect(anyRole, h.Brand.ListBrandsHandler))
	mux.HandleFunc("POST /v1/marcas", protect(anyRole, h.Brand.CreateBrandHandler))
	mux.HandleFunc("GET /v1/marcas/{id}", protect(anyRole, h.Brand.GetBrandByIDHandler))
	mux.HandleFunc("PUT /v1/marcas/{id}", protect(managers, h.Brand.UpdateBrandHandler))
	mux.HandleFunc("DELETE /v1/marcas/{id}", protect(managers, h.Brand.DeleteBrandHandler))
	mux.HandleFunc("GET /v1/marcas/{id}/historico", protect(authedEmpty, h.Brand.BrandHistoryHandler))

	// --- Movimentações ---
	mux.HandleFunc("POST /v1/movimentacoes", protect(anyRole, h.Movement.RegisterMovementHandler))
	mux.HandleFunc("GET /v1/movimentacoes", protect(authedEmpty, h.Movement.ListMovementsHandler))

	// --- Sistema ---
	mux.HandleFunc("GET /v1/store/status", protect(adminsOnly, h.System.StoreStatusHandler))

	return mux
}
