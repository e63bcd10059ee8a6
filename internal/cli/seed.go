package cli

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"skilltrack-service/internal/config"
	"skilltrack-service/internal/infra/postgres"
)

// NewSeedCmd loads the sample catalog into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the sample course catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "clear the existing catalog before seeding")
	return cmd
}

func runSeed(ctx context.Context, configPath string, force bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Log.Mode)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	courses := sampleCourses()
	videos := sampleVideos()
	quizzes := sampleQuizzes()

	seeded, err := postgres.NewSeeder(pool).Seed(ctx, courses, videos, quizzes, force)
	if err != nil {
		return err
	}
	if !seeded {
		log.Infow("catalog already initialized, use --force to override")
		return nil
	}
	log.Infow("sample catalog seeded", "courses", len(courses), "videos", len(videos), "quizzes", len(quizzes))
	return nil
}
