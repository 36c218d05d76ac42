package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pageza/pantrychef/backend/internal/database"
	"github.com/pageza/pantrychef/backend/internal/logger"
	"github.com/pageza/pantrychef/backend/internal/mealdb"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/types"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.RunMigrations(db, cfg.MigrationsDir, zlog)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample recipes (idempotent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logger.ContextWithLogger(cmd.Context(), zlog)
		created, err := service.Seed(ctx, db)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d recipes\n", created)
		return nil
	},
}

var importFlags struct {
	category string
	search   string
	limit    int
	owner    string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import recipes from the third-party meal API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logger.ContextWithLogger(cmd.Context(), zlog)

		owner := uuid.Nil
		if importFlags.owner != "" {
			var user models.User
			if err := db.WithContext(ctx).Where("email = ?", importFlags.owner).First(&user).Error; err != nil {
				return fmt.Errorf("find owner %s: %w", importFlags.owner, err)
			}
			owner = user.ID
		}

		source := mealdb.New(cfg.MealDBBaseURL, cfg.MealDBTimeout)
		importer := service.NewImportService(db, source, service.NewRecipeService(db))
		result, err := importer.Import(ctx, owner, &types.ImportRequest{
			Category: importFlags.category,
			Search:   importFlags.search,
			Limit:    importFlags.limit,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d recipes, skipped %d\n", result.Imported, result.Skipped)
		for _, r := range result.Recipes {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", r.ID, r.Name)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFlags.category, "category", "", "third-party category, e.g. Vegetarian")
	importCmd.Flags().StringVar(&importFlags.search, "search", "", "free-text meal search")
	importCmd.Flags().IntVar(&importFlags.limit, "limit", 10, "maximum meals to fetch")
	importCmd.Flags().StringVar(&importFlags.owner, "owner", "", "email of the user recorded as creator")
	importCmd.MarkFlagsOneRequired("category", "search")
}
