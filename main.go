package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourops/internal/cache"
	intconfig "tourops/internal/config"
	router "tourops/internal/http"
	"tourops/internal/http/handlers"
	"tourops/internal/metrics"
	"tourops/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	intconfig.ConnectDB(env.DBDSN)
	defer intconfig.CloseDB()

	metrics.Register()

	catalogCache := cache.New(env.RedisAddr, env.RedisPassword, 5*time.Minute)
	defer catalogCache.Close()
	handlers.SetCache(catalogCache)

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// background sweep flips past-departure spots to Departed
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go runDepartedSweep(sweepCtx, env.SpotSweepInterval)

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}

func runDepartedSweep(ctx context.Context, interval time.Duration) {
	svc := services.SpotService{RequestID: "sweep"}
	if _, err := svc.SweepDeparted(time.Now()); err != nil {
		log.Printf("departed sweep failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := svc.SweepDeparted(now); err != nil {
				log.Printf("departed sweep failed: %v", err)
			}
		}
	}
}
