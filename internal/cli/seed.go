package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"level-assessment-service/internal/config"
	"level-assessment-service/internal/domain"
	pgstore "level-assessment-service/internal/infra/postgres"
	"level-assessment-service/internal/questionbank"
)

// NewSeedCmd writes the built-in question sets and configured rooms to Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed question sets and rooms into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath)
		},
	}
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	for _, variant := range domain.Variants {
		updated, err := pgstore.SaveQuestionSet(ctx, pool, questionbank.Set(variant))
		if err != nil {
			return fmt.Errorf("seed %s: %w", variant, err)
		}
		log.Printf("question set %s v%d updated=%v", variant, questionbank.Version, updated)
	}

	remote := pgstore.NewRemoteService(pool)
	for _, room := range cfg.Rooms {
		for _, member := range room.Members {
			if err := remote.AddRoomMember(ctx, room.ID, member); err != nil {
				return err
			}
		}
	}
	log.Printf("seeded %d rooms", len(cfg.Rooms))
	return nil
}
