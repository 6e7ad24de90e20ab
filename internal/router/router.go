package router

import (
	"time"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/config"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/handler"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/middleware"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/repository"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/service"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	sessions := session.NewStore(rdb, time.Duration(cfg.SessionTTLHours)*time.Hour)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	pastoralRepo := repository.NewPastoralRepository(db)
	bemRepo := repository.NewBemRepository(db)
	emprestimoRepo := repository.NewEmprestimoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, sessions)
	bemSvc := service.NewBemService(bemRepo)
	pastoralSvc := service.NewPastoralService(pastoralRepo, usuarioRepo)
	emprestimoSvc := service.NewEmprestimoService(emprestimoRepo, bemRepo, usuarioRepo, pastoralRepo)
	relatorioSvc := service.NewRelatorioService(bemRepo, emprestimoRepo, pastoralRepo)
	dashboardSvc := service.NewDashboardService(bemRepo, emprestimoRepo, pastoralRepo, usuarioRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	bensH := handler.NewBensHandler(bemSvc)
	pastoraisH := handler.NewPastoraisHandler(pastoralSvc)
	emprestimosH := handler.NewEmprestimosHandler(emprestimoSvc)
	relatoriosH := handler.NewRelatoriosHandler(relatorioSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes — every session may read, only ADM may mutate
	sessionMW := middleware.SessionAuth(sessions)
	adminMW := middleware.RequireAdmin()
	v1 := r.Group("/v1", sessionMW)
	{
		v1.POST("/auth/logout", authH.Logout)
		v1.GET("/auth/me", authH.Me)

		v1.GET("/bens", bensH.Listar)
		v1.GET("/bens/:id", bensH.Obter)
		bens := v1.Group("/bens", adminMW)
		{
			bens.POST("", bensH.Criar)
			bens.PUT("/:id", bensH.Atualizar)
			bens.DELETE("/:id", bensH.Excluir)
		}

		v1.GET("/emprestimos", emprestimosH.Listar)
		v1.GET("/emprestimos/:id", emprestimosH.Obter)
		emprestimos := v1.Group("/emprestimos", adminMW)
		{
			emprestimos.POST("", emprestimosH.RegistrarRetirada)
			emprestimos.PUT("/:id/devolucao", emprestimosH.RegistrarDevolucao)
		}

		v1.GET("/pastorais", pastoraisH.Listar)
		v1.GET("/pastorais/:id", pastoraisH.Obter)
		pastorais := v1.Group("/pastorais", adminMW)
		{
			pastorais.POST("", pastoraisH.Criar)
			pastorais.PUT("/:id", pastoraisH.Atualizar)
			pastorais.DELETE("/:id", pastoraisH.Excluir)
			pastorais.POST("/:id/membros", pastoraisH.AdicionarMembro)
		}

		// Account management is ADM-only end to end. The self-deletion
		// check happens inside the handler (needs the target id).
		usuarios := v1.Group("/usuarios", adminMW)
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.GET("/:id", usuariosH.Obter)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Excluir)
		}

		v1.GET("/relatorios", relatoriosH.Gerar)
		v1.GET("/dashboard/stats", dashboardH.Stats)
	}

	return r
}
