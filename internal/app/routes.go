package app

import (
	"context"
	"fmt"
	"time"

	"github.com/1810649011/my-web-end/internal/auth"
	"github.com/1810649011/my-web-end/internal/config"
	"github.com/1810649011/my-web-end/internal/handlers"
	"github.com/1810649011/my-web-end/internal/repo"
	"github.com/1810649011/my-web-end/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Setup registers all routes on the given engine. Two record backends
// are mounted side by side: the Mongo-backed, owner-scoped variant
// under /records (JWT required), and the single-tenant Postgres
// variant under /sql/records.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, mdb *mongo.Database, rdb *redis.Client) error {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	userRepo := repo.NewMongoUserRepo(mdb)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users setup: %w", err)
	}
	mongoRecords := repo.NewMongoRecordRepo(mdb)
	if err := mongoRecords.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("records setup: %w", err)
	}

	revoked := auth.NewStore(rdb)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(userSvc, revoked, cfg.JWT.Secret, cfg.JWT.TokenTTL())
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireAuth(cfg.JWT.Secret, revoked))
	mongoHandler := handlers.NewRecordHandler(service.NewRecordService(mongoRecords))
	registerRecordRoutes(protected.Group("/records"), mongoHandler)

	pgHandler := handlers.NewRecordHandler(service.NewRecordService(repo.NewPGRecordRepo(db)))
	registerRecordRoutes(api.Group("/sql/records"), pgHandler)

	return nil
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Remark API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerRecordRoutes(g *gin.RouterGroup, h *handlers.RecordHandler) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
}
