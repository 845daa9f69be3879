package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/metalagman/maimp/internal/app"
	"github.com/metalagman/maimp/internal/db"
	"github.com/metalagman/maimp/internal/report"
	"github.com/metalagman/maimp/internal/session"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect and manage recorded sessions",
	}
	cmd.AddCommand(sessionsListCmd())
	cmd.AddCommand(sessionsShowCmd())
	cmd.AddCommand(sessionsPruneCmd())
	return cmd
}

func openStore(cmd *cobra.Command) (*db.Store, func(), error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig(workDir)
	if err != nil {
		return nil, nil, err
	}
	var store *db.Store
	stop, err := app.Start(cmd.Context(), cfg, cmd.OutOrStdout(), &store)
	if err != nil {
		return nil, nil, err
	}
	return store, stop, nil
}

func sessionsListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, stop, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer stop()

			items, err := store.ListSessions(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no sessions recorded")
				return nil
			}
			t := table.New().Headers("SESSION", "STARTED", "STATUS", "TASKS", "AGENTS", "REPOSITORY")
			for _, it := range items {
				t.Row(it.SessionID, it.CreatedAt, it.Status, strconv.Itoa(it.TaskCount), strconv.Itoa(it.AgentCount), it.RepoURL)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of sessions to list (0 for all)")
	return cmd
}

func sessionsShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the report of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, stop, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer stop()

			rec, err := store.GetSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if rec.ReportPath == "" {
				return fmt.Errorf("session %s has no report (status %s)", rec.SessionID, rec.Status)
			}
			rep, err := report.Load(rec.ReportPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(rep); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			case "markdown":
				r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
				if err != nil {
					return fmt.Errorf("create renderer: %w", err)
				}
				rendered, err := r.Render(report.Markdown(rep))
				if err != nil {
					return fmt.Errorf("render report: %w", err)
				}
				_, err = fmt.Fprint(out, rendered)
				return err
			default:
				return fmt.Errorf("unknown format %q (want markdown, json or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output format: markdown, json or yaml")
	return cmd
}

func sessionsPruneCmd() *cobra.Command {
	var keepLast int
	var keepDays int
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Prune old sessions and their reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(workDir)
			if err != nil {
				return err
			}

			policy := db.RetentionPolicy{KeepLast: keepLast, KeepDays: keepDays}
			if policy.KeepLast <= 0 && policy.KeepDays <= 0 {
				policy = db.RetentionPolicy{
					KeepLast: cfg.Retention.KeepLast,
					KeepDays: cfg.Retention.KeepDays,
				}
			}
			if policy.KeepLast <= 0 && policy.KeepDays <= 0 {
				return errors.New("set --keep-last or --keep-days, or configure retention in the config file")
			}

			lock, err := session.AcquireLock(cfg.Session.StateDir)
			if err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			var store *db.Store
			stop, err := app.Start(cmd.Context(), cfg, cmd.OutOrStdout(), &store)
			if err != nil {
				return err
			}
			defer stop()

			res, err := store.PruneSessions(cmd.Context(), policy, dryRun)
			if err != nil {
				return err
			}
			mode := "deleted"
			if dryRun {
				mode = "would delete"
			}
			log.Info().Msgf("%s %d sessions (kept %d, skipped %d)", mode, res.Deleted, res.Kept, res.Skipped)
			return nil
		},
	}
	cmd.Flags().IntVar(&keepLast, "keep-last", 0, "keep the newest N sessions")
	cmd.Flags().IntVar(&keepDays, "keep-days", 0, "keep sessions newer than N days")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be pruned without deleting")
	return cmd
}
