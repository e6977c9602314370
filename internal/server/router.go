package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"askpdf-backend/internal/llm"
	"askpdf-backend/internal/llm/gemini"
	"askpdf-backend/internal/mail"
	"askpdf-backend/internal/qa"
	"askpdf-backend/internal/search"
	"askpdf-backend/internal/shared/config"
	"askpdf-backend/internal/shared/server/middleware"
	"askpdf-backend/internal/shared/server/respond"
	"askpdf-backend/internal/shared/telemetry"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	var llmClient llm.Client
	client, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel,
		gemini.WithTimeout(time.Duration(cfg.GeminiTimeoutS)*time.Second))
	if err != nil {
		telemetry.Error("gemini.unconfigured", map[string]any{"err": err.Error()})
		llmClient = llm.Unconfigured{}
	} else {
		llmClient = client
	}

	svc := &qa.Service{
		LLM: llmClient,
		Sources: []qa.ResourceSource{
			search.NewArxiv(""),
			search.NewSemanticScholar(""),
		},
	}
	qaHandler := qa.NewHandler(svc)
	mailHandler := mail.NewHandler(mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass))

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	// Model calls are the expensive resource; cap them per client IP.
	limiter := middleware.NewRateLimiter(nil)
	asks := api.Group("", middleware.RateLimit(limiter, middleware.RateLimitRule{Rate: 0.5, Burst: 5}))
	qaHandler.RegisterRoutes(asks)
	mailHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
