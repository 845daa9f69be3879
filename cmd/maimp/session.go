package main

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/metalagman/maimp/internal/app"
	"github.com/metalagman/maimp/internal/config"
	"github.com/metalagman/maimp/internal/console"
	"github.com/metalagman/maimp/internal/session"
	"github.com/spf13/cobra"
)

func sessionCmd() *cobra.Command {
	var workspace string
	var delay time.Duration
	cmd := &cobra.Command{
		Use:          "session [repo-url]",
		Short:        "Run a simulated multi-agent analysis session",
		Long:         "Run a simulated multi-agent analysis session against a repository URL and write the initial report into the workspace.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(workDir)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Repository.URL = args[0]
			}
			if cmd.Flags().Changed("workspace") {
				cfg.Repository.Workspace = resolve(workDir, workspace)
			}
			if cmd.Flags().Changed("delay") {
				cfg.Session.StepDelay = delay
			}
			return runSession(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&workspace, "workspace", "", "directory receiving the report (overrides repository.workspace)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "pause between printed tasks (overrides session.step_delay)")
	return cmd
}

func runSession(ctx context.Context, cfg config.Config, out io.Writer) error {
	lock, err := session.AcquireLock(cfg.Session.StateDir)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	c := console.New(out)
	c.Banner(
		"MULTI-AGENT SESSION MANAGER",
		"Target: "+repoName(cfg.Repository.URL)+" Repository",
	)

	var mgr *session.Manager
	stop, err := app.Start(ctx, cfg, out, &mgr)
	if err != nil {
		return err
	}
	defer stop()

	res, err := mgr.Run(ctx)
	if err != nil {
		return err
	}

	c.Printf("\n🚀 Ready for follow-up!\n")
	c.Printf("💡 You can now:\n")
	c.Printf("  • Review the generated report: maimp sessions show %s\n", res.SessionID)
	c.Printf("  • Browse past sessions: maimp ui\n")
	c.Printf("  • Prune old sessions: maimp sessions prune\n")
	return nil
}

// repoName extracts the repository name from a clone URL.
func repoName(url string) string {
	name := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return url
	}
	return name
}
