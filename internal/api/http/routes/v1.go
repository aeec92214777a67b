package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cataloghttp "github.com/bionano-bdd/bddb-backend/internal/catalog/http"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/discovery"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/links"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/repository"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/scoring"
)

type V1Deps struct {
	DB         *pgxpool.Pool
	CommentsDB *sql.DB
	JWTSecret  string
	Resolver   *links.Resolver
	Scheduler  *scoring.Scheduler
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")

	projectRepo := repository.NewProjectRepository(dep.DB)
	commentRepo := repository.NewCommentRepository(dep.CommentsDB)

	pipeline := discovery.NewPipeline(projectRepo, dep.Resolver)
	handler := cataloghttp.NewHandler(projectRepo, commentRepo, pipeline, dep.Resolver, dep.Scheduler)

	projectsGroup := api.Group("/projects")
	cataloghttp.Register(projectsGroup, handler, dep.JWTSecret)
}
