package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/farmhand/internal/metrics"
	"github.com/hitoshi/farmhand/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// 監視
	HealthChecker HealthChecker
	Metrics       *metrics.Collector
	Gatherer      prometheus.Gatherer

	// ドメインサービス
	AuthService       AuthServiceInterface
	FieldService      FieldServiceInterface
	AllocationService AllocationServiceInterface
	CropService       CropServiceInterface
	UserService       UserServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → RequestID → SecurityHeaders → Recovery → Logging →（認証ルートのみ）TokenAuth → RateLimit
//
// 登録・ログイン・ヘルスチェック・メトリクスはトークン不要のルートとして
// 認証ミドルウェアの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// 全ルート共通のミドルウェア
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.Metrics))

	authHandler := NewAuthHandler(deps.AuthService, deps.Metrics)
	fieldHandler := NewFieldHandler(deps.FieldService, deps.AllocationService, deps.Metrics)
	cropHandler := NewCropHandler(deps.CropService)
	userHandler := NewUserHandler(deps.UserService)
	healthHandler := NewHealthHandler(deps.HealthChecker)

	// --- 認証不要のルート ---

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Get("/health", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: TokenAuth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewTokenAuthMiddleware(deps.TokenVerifier))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// パスワード変更
		r.Put("/api/auth/change-password", authHandler.ChangePassword)

		// 圃場管理と購入
		r.Route("/api/fields", func(r chi.Router) {
			r.Get("/", fieldHandler.ListFields)
			r.Post("/", fieldHandler.AddField)

			// POST /api/fields/purchase - 圃場購入（購入専用レート制限を追加）
			r.With(deps.RateLimiter.PurchaseMiddleware()).Post("/purchase", fieldHandler.Purchase)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", fieldHandler.UpdateField)
				r.Delete("/", fieldHandler.DeleteField)
			})
		})

		// 作付け管理
		r.Route("/api/crops", func(r chi.Router) {
			r.Get("/", cropHandler.ListCrops)
			r.Post("/", cropHandler.AddCrop)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", cropHandler.UpdateCrop)
				r.Delete("/", cropHandler.DeleteCrop)
			})
		})

		// ユーザー管理
		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)
			r.Get("/{id}", userHandler.GetUser)
		})
	})

	return r
}
