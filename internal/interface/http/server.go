package httpapi

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	appAnalysis "ai-chart-analyst/internal/application/analysis"
	"ai-chart-analyst/internal/application/auth"
	appMember "ai-chart-analyst/internal/application/member"
	appTestimonial "ai-chart-analyst/internal/application/testimonial"
	"ai-chart-analyst/internal/infra/memory"
	authinfra "ai-chart-analyst/internal/infrastructure/auth"
	"ai-chart-analyst/internal/infrastructure/cache"
	"ai-chart-analyst/internal/infrastructure/config"
	"ai-chart-analyst/internal/infrastructure/persistence/postgres"

	"github.com/gin-gonic/gin"
)

const (
	errCodeBadRequest         = "BAD_REQUEST"
	errCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	errCodeUnauthorized       = "AUTH_UNAUTHORIZED"
	errCodeForbidden          = "AUTH_FORBIDDEN"
	errCodeProviderDown       = "AI_PROVIDER_UNAVAILABLE"
	errCodeFormatInvalid      = "AI_FORMAT_INVALID"
	errCodeNotFound           = "NOT_FOUND"
	errCodeConflict           = "CONFLICT"
	errCodeInternal           = "INTERNAL_ERROR"
)

const seedTimeout = 5 * time.Second

// Server 封裝 HTTP 路由與依賴。
type Server struct {
	engine        *gin.Engine
	store         *memory.Store
	db            *sql.DB
	tokenSvc      *authinfra.JWTIssuer
	authz         *auth.Authorizer
	activateUC    *auth.ActivateUseCase
	analyzeUC     *appAnalysis.AnalyzeUseCase
	historyUC     *appAnalysis.HistoryUseCase
	adminUC       *appMember.AdminUseCase
	testimonialUC *appTestimonial.UseCase
	tokenTTL      time.Duration
	cacheBackend  string
}

// memberRepository 聚合登入與後台管理需要的會員存取介面。
type memberRepository interface {
	auth.MemberRepository
	appMember.Repository
}

// NewServer 建立 API 伺服器。未設定資料庫時退回記憶體存儲，
// 未設定 Redis 時 last-analysis 快取也由記憶體承接。
func NewServer(cfg config.Config, db *sql.DB, provider appAnalysis.CompletionProvider) *Server {
	store := memory.NewStore()

	var memberRepo memberRepository
	var analysisRepo appAnalysis.AnalysisRepository
	var testimonialRepo appTestimonial.Repository
	if db != nil {
		memberRepo = postgres.NewMemberRepo(db)
		analysisRepo = postgres.NewAnalysisRepo(db)
		testimonialRepo = postgres.NewTestimonialRepo(db)
	} else {
		store.SeedMembers()
		memberRepo = store
		analysisRepo = store
		testimonialRepo = store.Testimonials()
	}

	var lastCache appAnalysis.LastAnalysisCache = store
	cacheBackend := "memory"
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		cancel()
		if err != nil {
			log.Printf("redis unavailable, falling back to memory cache: %v", err)
		} else {
			lastCache = redisCache
			cacheBackend = "redis"
		}
	}

	ttl := cfg.Auth.TokenTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	tokenSvc := authinfra.NewJWTIssuer(cfg.Auth.Secret, ttl)
	hasher := authinfra.BcryptHasher{}

	s := &Server{
		store:         store,
		db:            db,
		tokenSvc:      tokenSvc,
		authz:         auth.NewAuthorizer(),
		activateUC:    auth.NewActivateUseCase(memberRepo, hasher, tokenSvc),
		analyzeUC:     appAnalysis.NewAnalyzeUseCase(provider, analysisRepo, lastCache, appAnalysis.Options{}),
		historyUC:     appAnalysis.NewHistoryUseCase(analysisRepo, lastCache),
		adminUC:       appMember.NewAdminUseCase(memberRepo, hasher),
		testimonialUC: appTestimonial.NewUseCase(testimonialRepo),
		tokenTTL:      ttl,
		cacheBackend:  cacheBackend,
	}

	if db != nil {
		if repo, ok := memberRepo.(*postgres.MemberRepo); ok {
			ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
			defer cancel()
			if err := repo.SeedDefaults(ctx); err != nil {
				log.Printf("warning: seed members failed: %v", err)
			}
		}
	}

	gin.SetMode(gin.ReleaseMode)
	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.ginLogger(), corsMiddleware())
	s.registerRoutes()
	return s
}

// Handler 回傳路由處理器，供 HTTP server 掛載。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Store 主要用於測試注入初始資料。
func (s *Server) Store() *memory.Store {
	return s.store
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	api.GET("/ping", s.handlePing)
	api.GET("/health", s.handleHealth)
	api.POST("/auth/login", s.handleLogin)
	api.GET("/testimonials", s.handleListTestimonials)

	api.POST("/analyze", s.requireAuth(auth.PermAnalyze), s.handleAnalyze)
	api.GET("/analyses", s.requireAuth(auth.PermHistoryRead), s.handleListAnalyses)
	api.GET("/analyses/last", s.requireAuth(auth.PermHistoryRead), s.handleLastAnalysis)
	api.DELETE("/analyses/:id", s.requireAuth(auth.PermHistoryDelete), s.handleDeleteAnalysis)
	api.POST("/testimonials", s.requireAuth(auth.PermTestimonialWrite), s.handleSubmitTestimonial)

	admin := api.Group("/admin")
	admin.Use(s.requireAuth(auth.PermMemberManage))
	admin.GET("/members", s.handleListMembers)
	admin.POST("/members", s.handleCreateMember)
	admin.PUT("/members/:uid", s.handleUpdateMember)
	admin.DELETE("/members/:uid", s.handleDeleteMember)
}
