package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"pizza-service/internal/config"
	httpctrl "pizza-service/internal/controllers/http"
	"pizza-service/internal/infra"
	"pizza-service/internal/infra/rabbitmq"
	"pizza-service/internal/repository"
	filestore "pizza-service/internal/repository/file"
	memstore "pizza-service/internal/repository/memory"
	mysqlstore "pizza-service/internal/repository/mysql"
	redisstore "pizza-service/internal/repository/rediskv"
	"pizza-service/internal/services"
)

func main() {
	cfg := config.Load()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	charger, err := openCharger(cfg)
	if err != nil {
		log.Fatalf("payment gateway: %v", err)
	}

	mailer := infra.NewMailgunClient(cfg.MailgunBaseURL, cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailSender, cfg.GatewayTimeout)

	var publisher rabbitmq.PublisherInterface
	if cfg.AMQPURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	tokens := services.NewTokenService(store, cfg.TokenTTL)
	users := services.NewUserService(store)
	catalog := services.NewCatalogService(store)
	carts := services.NewCartService(store, catalog)
	orders := services.NewOrderService(store, catalog, charger, mailer, publisher)

	if cfg.StorageDriver != "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unavailable, catalog cache disabled: %v", err)
		} else {
			catalog.SetRedisClient(rdb)
			go func() {
				if err := catalog.Warmup(context.Background(), []string{"_pizzas", "_sides", "_drinks"}); err != nil {
					log.Printf("catalog warmup failed: %v", err)
				}
			}()
		}
	}

	handler := httpctrl.NewHandler(tokens, users, carts, catalog, orders)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	log.Printf("Starting pizza service on %s (storage driver %s)", cfg.ListenAddr, cfg.StorageDriver)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server run: %v", err)
	}
}

func openStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.StorageDriver {
	case "mysql":
		return mysqlstore.Open(cfg.MySQLDSN)
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return redisstore.New(rdb), nil
	case "memory":
		return memstore.New(), nil
	default:
		return filestore.New(cfg.DataDir)
	}
}

func openCharger(cfg *config.Config) (infra.Charger, error) {
	if cfg.PaymentProvider == "razorpay" {
		return infra.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.Currency), nil
	}
	return infra.NewStripeClient(cfg.StripeBaseURL, cfg.StripeSecretKey, cfg.Currency, cfg.GatewayTimeout), nil
}
