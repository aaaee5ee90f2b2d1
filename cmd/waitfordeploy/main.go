package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/ericfisherdev/waitfordeploy/internal/adapter/driven/github"
	"github.com/ericfisherdev/waitfordeploy/internal/adapter/driven/httpprobe"
	"github.com/ericfisherdev/waitfordeploy/internal/adapter/driving/action"
	"github.com/ericfisherdev/waitfordeploy/internal/application"
	"github.com/ericfisherdev/waitfordeploy/internal/config"
)

// errRunFailed signals that at least one failure was reported to the runner.
var errRunFailed = errors.New("run reported a failure")

var rootFlags struct {
	failFast bool
	debug    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errRunFailed) {
			slog.Error("fatal error", "error", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "waitfordeploy",
		Short:         "Wait for a pull request's deployment and its preview URL",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&rootFlags.failFast, "fail-fast", false, "stop on a missing token or failed pull request lookup")
	cmd.Flags().BoolVar(&rootFlags.debug, "debug", false, "enable debug logging")
	return cmd
}

func run(parent context.Context) error {
	level := slog.LevelInfo
	if rootFlags.debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// 1. Load configuration from the Actions runtime.
	gha := githubactions.New()
	cfg, err := config.Load(gha)
	if err != nil {
		return err
	}
	cfg.FailFast = rootFlags.failFast
	slog.Info("config loaded",
		"pull_request", cfg.PullRequest.String(),
		"api_url", cfg.APIURL,
		"timeout", cfg.Timeout,
		"poll_interval", cfg.PollInterval,
		"fail_fast", cfg.FailFast,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Wire adapters.
	ghClient, err := githubadapter.NewClient(cfg.GitHubToken, cfg.APIURL)
	if err != nil {
		return err
	}
	prober := httpprobe.NewProber(nil)
	reporter := action.NewReporter(gha)

	// 4. Each waiter gets its own full budget.
	statusWaiter := application.NewStatusWaiter(ghClient, application.NewPoller(cfg.PollInterval, cfg.Timeout, nil))
	urlWaiter := application.NewURLWaiter(prober, application.NewPoller(cfg.PollInterval, cfg.Timeout, nil))
	svc := application.NewWaitService(ghClient, reporter, statusWaiter, urlWaiter)

	// 5. Single pass.
	svc.Run(ctx, application.RunInput{
		Token:       cfg.GitHubToken,
		PullRequest: cfg.PullRequest,
		FailFast:    cfg.FailFast,
	})

	if reporter.Failed() {
		slog.Info("run failed", "message", reporter.LastFailure())
		return errRunFailed
	}
	slog.Info("run complete")
	return nil
}
