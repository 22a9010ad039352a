package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Krimson/stress-monitory/docs" // Swagger docs
	"github.com/Krimson/stress-monitory/internal/config"
	"github.com/Krimson/stress-monitory/internal/handler"
	"github.com/Krimson/stress-monitory/internal/llm"
	"github.com/Krimson/stress-monitory/internal/repository"
	"github.com/Krimson/stress-monitory/internal/service"
	"github.com/Krimson/stress-monitory/internal/ws"
)

// @title Stress Monitory API
// @version 1.0
// @description API для анализа стресса по сенсорным датасетам с помощью генеративной модели
// @description
// @description Сервис принимает CSV с сенсорными и поведенческими данными субъекта,
// @description валидирует его, запрашивает оценку стресса у генеративной модели (Ollama)
// @description и пишет алерт при превышении порога.

// @contact.name API Support
// @contact.email support@stressmonitory.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

func main() {
	log.Printf("[INFO] Starting stress-monitory server...")

	cfg := config.Load()
	log.Printf("[INFO] Configuration loaded: http_port=%s threshold=%.1f model=%s",
		cfg.HTTPPort, cfg.StressThreshold, cfg.OllamaModel)

	postgresRepo, err := repository.NewPostgresRepository(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to PostgreSQL: %v", err)
	}
	defer postgresRepo.Close()
	log.Printf("[INFO] Connected to PostgreSQL")

	alertCache := repository.NewAlertCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.AlertsCacheTTL)
	defer alertCache.Close()

	// Redis не критичен: без него read-path просто ходит в БД каждый раз
	var cache service.AlertsCache
	if err := alertCache.CheckConnection(context.Background()); err != nil {
		log.Printf("[WARN] Redis unavailable, alerts cache disabled: %v", err)
	} else {
		log.Printf("[INFO] Connected to Redis")
		cache = alertCache
	}

	llmClient := llm.NewClient(cfg.OllamaURL, cfg.OllamaModel, cfg.LLMTimeout)

	hub := ws.NewHub()
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go hub.Run(hubCtx)

	stressService := service.NewStressService(postgresRepo, llmClient, cache, hub, cfg.StressThreshold)

	httpHandler := handler.NewHTTPHandler(stressService, postgresRepo)

	router := mux.NewRouter()
	httpHandler.RegisterRoutes(router)
	router.HandleFunc("/ws/alerts", hub.ServeWS)

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      enableCORS(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // генерация может занимать до LLM_TIMEOUT_SECONDS
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[INFO] HTTP server listening on :%s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("[INFO] Received signal %v, starting graceful shutdown...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("[ERROR] Server forced to shutdown: %v", err)
	}

	log.Printf("[INFO] Server exited gracefully")
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Transfer-Encoding")

		if r.Method == "OPTIONS" {
			return
		}

		next.ServeHTTP(w, r)
	})
}
