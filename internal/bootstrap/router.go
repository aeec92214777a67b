package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/bionano-bdd/bddb-backend/internal/api/http"
	"github.com/bionano-bdd/bddb-backend/internal/api/http/middleware"
	"github.com/bionano-bdd/bddb-backend/internal/api/http/routes"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/links"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/scoring"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	JWTSecret   string
	DB          *pgxpool.Pool
	CommentsDB  *sql.DB
	Cache       *redis.Client
	Resolver    *links.Resolver
	Scheduler   *scoring.Scheduler
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)

	routes.RegisterV1(r, routes.V1Deps{
		DB:         dep.DB,
		CommentsDB: dep.CommentsDB,
		JWTSecret:  dep.JWTSecret,
		Resolver:   dep.Resolver,
		Scheduler:  dep.Scheduler,
	})

	return r
}
