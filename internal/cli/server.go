package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"level-assessment-service/internal/app"
	"level-assessment-service/internal/config"
	"level-assessment-service/internal/infra/memory"
	pgstore "level-assessment-service/internal/infra/postgres"
	redisstore "level-assessment-service/internal/infra/redis"
	"level-assessment-service/internal/questionbank"
	transport "level-assessment-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the assessment server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.QuestionLoader = questionbank.NewLoader()
	var remote app.RemoteDataService
	if pool != nil {
		loader = pgstore.NewQuestionLoader(pool)
		remote = pgstore.NewRemoteService(pool)
	} else {
		log.Printf("postgres not configured; mirroring results in memory")
		mem := memory.NewRemoteService()
		for _, room := range cfg.Rooms {
			for _, member := range room.Members {
				mem.AddMember(room.ID, member)
			}
		}
		remote = mem
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	var questions app.QuestionRepository
	var local app.KeyValueStore
	if redisClient != nil {
		questions = redisstore.NewQuestionRepository(redisClient, loader, questionTTL)
		local = redisstore.NewKVStore(redisClient, cfg.Redis.Prefix, config.TTLDuration(cfg.Redis.TTL, 0))
	} else {
		questions = memory.NewQuestionRepository(loader, questionTTL)
		local = memory.NewKVStore()
	}

	identity := app.ContextIdentity{}
	notifier := app.ContextNotifier{Fallback: app.LogNotifier{}}
	results := app.NewResultStore(local, remote, identity, notifier, app.ResultStoreOptions{
		Capacity:      cfg.Results.Capacity,
		MirrorTimeout: config.TTLDuration(cfg.Results.MirrorTimeout, app.DefaultMirrorTimeout),
	})
	service := app.NewAssessmentService(questions, results, identity, notifier)
	teacher := app.NewTeacherAggregator(remote, identity)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(service, teacher, cfg.CORS.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("starting assessment service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		// let fire-and-forget mirror writes finish before closing the pool
		results.Flush()
		return err
	})
	return g.Wait()
}
