package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pcforge-backend/internal/auth"
	"pcforge-backend/internal/config"
	"pcforge-backend/internal/payment"
	"pcforge-backend/internal/server"
	"pcforge-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := store.Connect(ctx, cfg.URI())
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	srv := server.New(server.Deps{
		Stores:   store.NewMongo(client.Database(cfg.DB.Name)),
		Tokens:   auth.NewManager(cfg.JWTSecret),
		Payments: payment.NewStripeGateway(cfg.Stripe.SecretKey),
		Origins:  cfg.CORSOrigins,
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}

	log.Println("listening on", httpSrv.Addr)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
