package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/app"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/app/handlers"
	appmw "github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/middleware"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/auth/jwtmiddleware"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/config"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/lib/logger"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/lib/logger/handlers/urllog"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/metrics"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

// reelPurgeInterval is how often expired reels are swept from the database.
const reelPurgeInterval = 15 * time.Minute

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	metrics.Init()

	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.Close()

	userRepo := storage.NewUserRepository(application.DB)
	txRepo := storage.NewWalletTransactionRepository(application.DB)
	friendRepo := storage.NewFriendRepository(application.DB)
	catalogRepo := storage.NewCatalogRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)
	couponRepo := storage.NewCouponRepository(application.DB)
	flashSaleRepo := storage.NewFlashSaleRepository(application.DB)
	reelRepo := storage.NewReelRepository(application.DB)
	chatRepo := storage.NewChatRepository(application.DB)

	tokenTTL := time.Duration(cfg.JWT.TokenTTL) * time.Minute
	authService := service.NewAuthService(log, userRepo, tokenTTL)
	walletService := service.NewWalletService(log, application.DB, userRepo, txRepo, friendRepo,
		application.Producer, cfg.Kafka.TransactionsTopic)
	friendService := service.NewFriendService(log, application.DB, friendRepo, userRepo, application.Pusher)
	loyaltyService := service.NewLoyaltyService(log, orderRepo)
	profileService := service.NewProfileService(log, userRepo, txRepo, loyaltyService)
	catalogService := service.NewCatalogService(log, catalogRepo, application.Cache, cfg.Redis.TTL)
	orderService := service.NewOrderService(log, orderRepo, userRepo, application.Pusher,
		application.Producer, cfg.Kafka.OrdersTopic)
	couponService := service.NewCouponService(log, couponRepo)
	flashSaleService := service.NewFlashSaleService(log, flashSaleRepo, catalogRepo,
		application.Cache, cfg.Redis.TTL)
	reelService := service.NewReelService(log, reelRepo)
	chatService := service.NewChatService(log, chatRepo, userRepo, application.Pusher)
	broadcastService := service.NewBroadcastService(log, userRepo, application.Pusher, application.Pool)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(chimw.Recoverer)
	router.Use(chimw.URLFormat)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTPServer.AllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	router.Use(appmw.RateLimit(cfg.HTTPServer.RateLimit))
	router.Use(appmw.HTTPMetrics)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", metrics.Handler())

	// public
	router.Post("/api/auth/register", handlers.RegisterHandler(log, authService))
	router.Post("/api/auth/login", handlers.LoginHandler(log, authService))
	router.Get("/api/products", handlers.ProductsHandler(log, catalogService))
	router.Get("/api/products/{id}", handlers.ProductHandler(log, catalogService))
	router.Get("/api/categories", handlers.CategoriesHandler(log, catalogService))
	router.Get("/api/brands", handlers.BrandsHandler(log, catalogService))
	router.Get("/api/banners", handlers.BannersHandler(log, catalogService, true))
	router.Get("/api/flash-sale", handlers.FlashSaleHandler(log, flashSaleService))
	router.Get("/api/reels", handlers.ReelsHandler(log, reelService))

	// authenticated
	router.Group(func(r chi.Router) {
		r.Use(jwtmiddleware.NewJWTMiddleware())

		r.Post("/api/auth/push-token", handlers.PushTokenHandler(log, authService))
		r.Get("/api/profile", handlers.ProfileHandler(log, profileService))
		r.Get("/api/profile/loyalty", handlers.LoyaltyHandler(log, loyaltyService))

		r.Get("/api/wallet/packages", handlers.PackagesHandler(log, walletService))
		r.Post("/api/wallet/recharge", handlers.RechargeHandler(log, walletService))
		r.Post("/api/wallet/exchange", handlers.ExchangeHandler(log, walletService))
		r.Post("/api/wallet/transfer", handlers.TransferHandler(log, walletService))
		r.Post("/api/wallet/gift", handlers.GiftHandler(log, walletService))
		r.Post("/api/wallet/withdraw", handlers.WithdrawHandler(log, walletService))
		r.Get("/api/wallet/history", handlers.HistoryHandler(log, walletService))

		r.Post("/api/friends/requests", handlers.SendFriendRequestHandler(log, friendService))
		r.Get("/api/friends/requests", handlers.FriendRequestsHandler(log, friendService))
		r.Post("/api/friends/requests/{id}/accept", handlers.AcceptFriendRequestHandler(log, friendService))
		r.Post("/api/friends/requests/{id}/reject", handlers.RejectFriendRequestHandler(log, friendService))
		r.Get("/api/friends", handlers.FriendsListHandler(log, friendService))
		r.Delete("/api/friends/{id}", handlers.RemoveFriendHandler(log, friendService))

		r.Post("/api/orders", handlers.CreateOrderHandler(log, orderService))
		r.Get("/api/orders", handlers.MyOrdersHandler(log, orderService))
		r.Post("/api/coupons/apply", handlers.ApplyCouponHandler(log, couponService))

		r.Post("/api/reels", handlers.CreateReelHandler(log, reelService))
		r.Delete("/api/reels/{id}", handlers.DeleteReelHandler(log, reelService))

		r.Post("/api/support/messages", handlers.SendMessageHandler(log, chatService))
		r.Get("/api/support/messages", handlers.MyThreadHandler(log, chatService))

		r.Post("/api/upload", handlers.UploadHandler(log, application.Uploader))
	})

	// admin
	router.Group(func(r chi.Router) {
		r.Use(jwtmiddleware.NewJWTMiddleware())
		r.Use(jwtmiddleware.RequireAdmin)

		r.Get("/api/admin/users", handlers.UsersHandler(log, profileService))

		r.Post("/api/admin/products", handlers.CreateProductHandler(log, catalogService))
		r.Put("/api/admin/products/{id}", handlers.UpdateProductHandler(log, catalogService))
		r.Delete("/api/admin/products/{id}", handlers.DeleteProductHandler(log, catalogService))
		r.Post("/api/admin/categories", handlers.CreateCategoryHandler(log, catalogService))
		r.Delete("/api/admin/categories/{id}", handlers.DeleteCategoryHandler(log, catalogService))
		r.Post("/api/admin/brands", handlers.CreateBrandHandler(log, catalogService))
		r.Delete("/api/admin/brands/{id}", handlers.DeleteBrandHandler(log, catalogService))
		r.Get("/api/admin/banners", handlers.BannersHandler(log, catalogService, false))
		r.Post("/api/admin/banners", handlers.CreateBannerHandler(log, catalogService))
		r.Delete("/api/admin/banners/{id}", handlers.DeleteBannerHandler(log, catalogService))

		r.Get("/api/admin/orders", handlers.AdminOrdersHandler(log, orderService))
		r.Patch("/api/admin/orders/{id}/status", handlers.OrderStatusHandler(log, orderService))

		r.Post("/api/admin/coupons", handlers.CreateCouponHandler(log, couponService))
		r.Get("/api/admin/coupons", handlers.CouponsHandler(log, couponService))
		r.Patch("/api/admin/coupons/{code}/active", handlers.CouponActiveHandler(log, couponService))
		r.Delete("/api/admin/coupons/{code}", handlers.DeleteCouponHandler(log, couponService))

		r.Put("/api/admin/flash-sale", handlers.SetFlashSaleHandler(log, flashSaleService))
		r.Delete("/api/admin/flash-sale", handlers.ClearFlashSaleHandler(log, flashSaleService))

		r.Get("/api/admin/support/threads", handlers.ThreadsHandler(log, chatService))
		r.Get("/api/admin/support/threads/{userID}", handlers.ThreadHandler(log, chatService))
		r.Post("/api/admin/support/threads/{userID}", handlers.ReplyHandler(log, chatService))

		r.Post("/api/admin/broadcast", handlers.BroadcastHandler(log, broadcastService))
	})

	// background sweep for expired reels
	purgeCtx, purgeCancel := context.WithCancel(context.Background())
	defer purgeCancel()
	go func() {
		ticker := time.NewTicker(reelPurgeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-purgeCtx.Done():
				return
			case <-ticker.C:
				if n, err := reelService.PurgeExpired(purgeCtx); err != nil {
					log.Error("reel purge failed", slog.Any("error", err))
				} else if n > 0 {
					log.Info("purged expired reels", slog.Int64("count", n))
				}
			}
		}
	}()

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
