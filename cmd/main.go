package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"estoque/config"
	_ "estoque/docs"
	"estoque/internal/pkg/cache"
	"estoque/internal/pkg/database"
	"estoque/internal/pkg/logger"
	"estoque/internal/pkg/middleware"
	"estoque/internal/pkg/token"

	// Armazenamento de documentos
	"estoque/internal/store"
	"estoque/internal/store/httpstore"
	"estoque/internal/store/mirror"
	"estoque/internal/store/pgstore"

	// Camadas para Injeção de Dependências
	"estoque/internal/api/brand"
	"estoque/internal/api/movement"
	"estoque/internal/api/product"
	"estoque/internal/api/router"
	"estoque/internal/api/system"
	"estoque/internal/api/user"
	"estoque/internal/repository/brandrepo"
	"estoque/internal/repository/movementrepo"
	"estoque/internal/repository/productrepo"
	"estoque/internal/repository/userrepo"
	"estoque/internal/service/brandservice"
	"estoque/internal/service/ledgerservice"
	"estoque/internal/service/productservice"
	"estoque/internal/service/userservice"
)

// @title Estoque API
// @version 1.0
// @description API de controle de estoque: produtos, marcas, movimentações e usuários.
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Println("⚡ Inicializando serviço Estoque...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	var appLog logger.Logger
	if cfg.IsDevelopment() {
		appLog = logger.NewDevelopmentLogger(cfg.LogLevel)
	} else {
		appLog = logger.NewLogger(cfg.LogLevel)
	}
	appLog.Info("Configurações carregadas.", map[string]interface{}{"store_backend": cfg.StoreBackend, "env": cfg.Environment})

	// 1. Infraestrutura
	cacheClient := cache.NewRedisClient(cfg.RedisAddr, appLog)

	mirrorStore, err := mirror.New(cfg.MirrorLatency, appLog)
	if err != nil {
		appLog.Fatal("Falha ao carregar a carga inicial do espelho.", err)
	}

	live, db := newLiveBackend(cfg, appLog)
	if db != nil {
		defer db.Close()
	}

	initial := store.ModeLive
	var liveBackend store.Backend
	if live != nil {
		liveBackend = store.NewCached(live, cacheClient, cfg.CacheTTL, appLog)
	} else {
		initial = store.ModeMirror
	}
	selector := store.NewSelector(liveBackend, mirrorStore, initial, appLog)
	appLog.Info("Armazenamento de documentos pronto.", map[string]interface{}{"mode": selector.Mode().String()})

	// 2. Repository -> Service -> Handler
	productRepo := productrepo.NewProductRepository(selector, appLog)
	brandRepo := brandrepo.NewBrandRepository(selector, appLog)
	movementRepo := movementrepo.NewMovementRepository(selector, appLog)
	userRepo := userrepo.NewUserRepository(selector, appLog)

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	denylist := token.NewDenylist(cacheClient)

	ledgerSvc := ledgerservice.NewService(productRepo, movementRepo, appLog)
	productSvc := productservice.NewService(productRepo, brandRepo, appLog)
	brandSvc := brandservice.NewService(brandRepo, appLog)
	userSvc := userservice.NewService(userRepo, tokenSvc, denylist, appLog)

	handlers := router.Handlers{
		Product:  product.NewHandler(productSvc, ledgerSvc, appLog),
		Brand:    brand.NewHandler(brandSvc, appLog),
		Movement: movement.NewHandler(ledgerSvc, appLog),
		User:     user.NewHandler(userSvc, appLog),
		System:   system.NewHandler(selector, appLog),
	}
	appLog.Debug("Handlers inicializados.", nil)

	// 3. Roteador e middlewares globais
	mux := router.NewRouter(handlers, router.Auth{Tokens: tokenSvc, Revocations: denylist}, appLog)
	handler := middleware.Chain(mux,
		middleware.RequestLogger(appLog),
		middleware.Recoverer(appLog),
		middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, appLog),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 4. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor Estoque ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}

// newLiveBackend monta o armazenamento principal escolhido em STORE_BACKEND.
// Devolve nil quando o serviço deve operar só com o espelho.
func newLiveBackend(cfg *config.Config, appLog logger.Logger) (store.Backend, *sql.DB) {
	switch cfg.StoreBackend {
	case config.StoreBackendHTTP:
		appLog.Info("Usando servidor de documentos HTTP.", map[string]interface{}{"url": cfg.StoreURL})
		return httpstore.New(cfg.StoreURL, cfg.StoreTimeout, appLog), nil

	case config.StoreBackendPostgres:
		db, err := database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			appLog.Warn("PostgreSQL indisponível na inicialização; iniciando no espelho.", map[string]interface{}{"error": err.Error()})
			return nil, nil
		}
		appLog.Info("Conexão PostgreSQL estabelecida.", nil)
		return pgstore.New(db, cfg.DBTimeout, appLog), db

	case config.StoreBackendMirror:
		return nil, nil
	}

	appLog.Warn("STORE_BACKEND desconhecido; iniciando no espelho.", map[string]interface{}{"store_backend": cfg.StoreBackend})
	return nil, nil
}
