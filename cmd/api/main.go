package main

import (
	"context"
	"log"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"

	"github.com/bionano-bdd/bddb-backend/config"
	"github.com/bionano-bdd/bddb-backend/internal/bootstrap"
	cronjob "github.com/bionano-bdd/bddb-backend/internal/catalog/cron"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/links"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/repository"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/scoring"
	"github.com/bionano-bdd/bddb-backend/internal/storage/postgres"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	commentsDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("database (comments): %v", err)
	}
	defer commentsDB.Close()

	var cache *redis.Client
	if cfg.Redis.Enabled {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	resolver, err := buildResolver(ctx, cfg, cache)
	if err != nil {
		log.Fatalf("s3: %v", err)
	}

	projectRepo := repository.NewProjectRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)

	engine := scoring.NewEngine(attachmentRepo, projectRepo)
	scheduler := scoring.NewScheduler(engine, scoring.DefaultDebounce)
	defer scheduler.Flush()

	cronjob.NewScheduler(engine, projectRepo, projectRepo, 5).Start()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "bddb-backend",
		Version:     cfg.App.Version,
		JWTSecret:   cfg.Auth.JWTSecret,
		DB:          pool,
		CommentsDB:  commentsDB,
		Cache:       cache,
		Resolver:    resolver,
		Scheduler:   scheduler,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func buildResolver(ctx context.Context, cfg *config.Config, cache *redis.Client) (*links.Resolver, error) {
	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.AWS.Region),
	}
	if cfg.AWS.AccessKeyID != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	signer := links.NewS3Presigner(s3.NewFromConfig(awsCfg), cfg.AWS.Bucket)

	var urlCache *links.URLCache
	if cache != nil {
		urlCache = links.NewURLCache(cache)
	}
	return links.NewResolver(signer, urlCache), nil
}
