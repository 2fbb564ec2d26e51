package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Pacotes de infraestrutura e utilitários
	"goshop/config"
	"goshop/internal/pkg/cache"
	"goshop/internal/pkg/database"
	"goshop/internal/pkg/hash"
	"goshop/internal/pkg/logger"
	"goshop/internal/pkg/token"

	// Camadas da aplicação para Injeção de Dependências
	"goshop/internal/api/auth"
	"goshop/internal/api/product"
	"goshop/internal/api/router"
	"goshop/internal/api/user"
	"goshop/internal/repository/productrepo"
	"goshop/internal/repository/userrepo"
	"goshop/internal/service/authservice"
	"goshop/internal/service/productservice"
	"goshop/internal/service/userservice"
)

// @title GoShop API
// @version 1.0
// @description API de autenticação e catálogo de produtos.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço GoShop...")

	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	// Se não existir, seguimos: as variáveis essenciais podem estar no
	// ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexão Redis estabelecida.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS (montagem explícita do grafo de objetos)
	// Ordem: Infra -> Repository -> Service -> Handler. Sem service locator:
	// cada componente recebe seus colaboradores no construtor.

	// A. Componentes folha (hash de senha e emissão de token)
	passwordHasher := hash.NewBcryptHasher()
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	log.Debug("Hasher de senha e serviço de tokens JWT inicializados.", nil)

	// B. Módulo de Usuário/Autenticação
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	userSvc := userservice.NewService(userRepo, passwordHasher, log)
	authSvc := authservice.NewService(userSvc, passwordHasher, tokenSvc, log)
	userHandler := user.NewHandler(userSvc, log)
	authHandler := auth.NewHandler(authSvc, log)
	log.Debug("Módulo de usuário/autenticação inicializado.", nil)

	// C. Módulo de Produto
	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	productSvc := productservice.NewService(productRepo, log)
	productHandler := product.NewHandler(productSvc, log)
	log.Debug("Módulo de produto inicializado.", nil)

	// 4. Configuração e Início do Roteador/Servidor

	r := router.NewRouter(
		userHandler,
		authHandler,
		productHandler,
		tokenSvc,
		cacheClient,
		cfg.RateLimitMaxRequests,
		cfg.RateLimitPeriod,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoShop ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	// Captura de sinal para desligamento gracioso
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
