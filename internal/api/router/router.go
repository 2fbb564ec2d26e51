package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "goshop/docs" // Registro da especificação Swagger gerada

	"goshop/internal/api/auth"
	"goshop/internal/api/product"
	"goshop/internal/api/user"
	"goshop/internal/pkg/cache"
	"goshop/internal/pkg/middleware"
)

// NewRouter configura e retorna o roteador HTTP principal: a tabela explícita
// de rotas método+caminho → handler. Recebe os Handlers já inicializados por
// injeção de dependências.
func NewRouter(
	userHandler *user.Handler,
	authHandler *auth.Handler,
	productHandler *product.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
	rateLimitMax int,
	rateLimitPeriod time.Duration,
) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	mux := http.NewServeMux()

	// --- 1. Rotas de Health Check e Documentação ---
	mux.HandleFunc("/ping", PingHandler)
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// --- 2. Rotas Públicas de Usuário/Autenticação (v1) ---
	mux.HandleFunc("/v1/register", userHandler.RegisterUserHandler)
	mux.HandleFunc("/v1/login", authHandler.LoginUserHandler)

	// --- 3. Rotas de Produto (v1), atrás do portão de autenticação ---
	// Todas as operações de catálogo exigem um JWT válido.
	requireAuth := middleware.NewAuthMiddleware(tokenSvc)

	// POST /v1/products (criar) e GET /v1/products (listar, filtro ?name=)
	mux.HandleFunc("/v1/products", requireAuth(productHandler.ProductsCollectionHandler))

	// GET /v1/products/{id} (buscar) e DELETE /v1/products/{id} (remover)
	mux.HandleFunc("/v1/products/", requireAuth(productHandler.ProductItemHandler))

	// --- 4. Middlewares Globais ---
	return middleware.RateLimiter(cacheClient, rateLimitMax, rateLimitPeriod)(mux)
}

// PingHandler é a função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
