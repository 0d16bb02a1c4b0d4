package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Krushna-ai/GDVG/internal/config"
	"github.com/Krushna-ai/GDVG/internal/identifier"
	"github.com/Krushna-ai/GDVG/internal/infrastructure/database"
	"github.com/Krushna-ai/GDVG/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Inspect catalog identifiers and canonical URLs",
		SilenceUsage: true,
	}

	root.AddCommand(
		newSlugCmd(),
		newResolveCmd(),
		newURLCmd(),
		newPingCmd(),
	)
	return root
}

func newSlugCmd() *cobra.Command {
	var stored bool

	cmd := &cobra.Command{
		Use:   "slug <title>",
		Short: "Print the URL slug for a title",
		Long: `Prints the cosmetic slug used in canonical URLs.

Examples:
  catalogctl slug "Breaking Bad"
  catalogctl slug --stored "Amélie"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if stored {
				fmt.Fprintln(cmd.OutOrStdout(), identifier.StoredSlug(title))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), identifier.Slugify(title))
			return nil
		},
	}

	cmd.Flags().BoolVar(&stored, "stored", false, "print the transliterated slug written to the slug column")
	return cmd
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <segment>",
		Short: "Show how a URL segment is decoded",
		Long: `Classifies a URL segment the same way the API does, without a lookup.

Examples:
  catalogctl resolve 1396
  catalogctl resolve squid-game_a1b2c3d4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cand := identifier.Resolve(args[0])
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "kind: %s\n", cand.Kind)
			fmt.Fprintf(out, "key:  %s\n", cand.Key())
			if cand.Kind == identifier.KindLegacyTitle {
				fmt.Fprintf(out, "titles: %s\n", strings.Join(cand.TitleVariants(), " | "))
			}
			return nil
		},
	}
}

type linkable struct {
	id   *int64
	name string
}

func (l linkable) PublicIdentifier() *int64 { return l.id }
func (l linkable) DisplayName() string      { return l.name }

func newURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url <kind> <public-id> [title]",
		Short: "Build the canonical URL of a record",
		Long: `Builds the canonical path from a content type (or "person"), a public ID
and an optional title.

Examples:
  catalogctl url drama 736993 "Breaking Bad"
  catalogctl url person 17419`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid public id %q: %w", args[1], err)
			}

			var title string
			if len(args) == 3 {
				title = args[2]
			}

			url, err := identifier.BuildURL(args[0], linkable{id: &id, name: title})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}

func newPingCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured database is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.App.Environment, cfg.App.LogLevel)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			db := database.NewPostgresDB(cfg.Database)
			if err := db.Connect(ctx); err != nil {
				return err
			}
			defer db.Close()

			if err := db.HealthCheck(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall connection timeout")
	return cmd
}
