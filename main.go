package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/chainvote/client"
	"github.com/danielhkuo/chainvote/cliparse"
	"github.com/danielhkuo/chainvote/launcher"
	"github.com/danielhkuo/chainvote/livesync"
	"github.com/danielhkuo/chainvote/metrics"
	"github.com/danielhkuo/chainvote/middleware"
	"github.com/danielhkuo/chainvote/page"
	"github.com/danielhkuo/chainvote/router"
	"github.com/danielhkuo/chainvote/session"
	"github.com/danielhkuo/chainvote/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		flags cliparse.Config
		cfg   cliparse.Config
	)

	root := &cobra.Command{
		Use:           "chainvote",
		Short:         "Live results and vote confirmation for a chain-verified voting server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = cliparse.Resolve(flags)
			if err != nil {
				return err
			}
			return setupLogging(cmd.ErrOrStderr(), cfg)
		},
	}
	cliparse.AddFlags(root.PersistentFlags(), &flags)

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the vote page and relay results to the voting server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cfg)
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Show live results in the terminal",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return runWatch(ctx, cfg, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "vote [candidate]",
			Short: "Confirm and submit a vote",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var candidate string
				if len(args) == 1 {
					candidate = args[0]
				}
				prompter := term.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
				return runVote(cmd.Context(), cfg, prompter, candidate, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "launch -- command [args...]",
			Short: "Check the voting server's database, then start it",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return launcher.Run(ctx, cfg.DatabasePath, args)
			},
		},
	)
	return root
}

func setupLogging(w io.Writer, cfg cliparse.Config) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

func runServe(cfg cliparse.Config) error {
	// Create router
	mux, err := router.NewRouter(cfg)
	if err != nil {
		return err
	}

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins)(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	ms := metrics.NewService(cfg.MetricsAddr)
	go ms.Start()

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ms.ShutDown(ctx)
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "upstream", cfg.UpstreamURL)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
		return err
	}
	slog.Info("Server closed", "error", err)
	return nil
}

func newClient(cfg cliparse.Config) (*client.Client, error) {
	if err := cfg.RequireUpstream(); err != nil {
		return nil, err
	}
	return client.New(cfg.UpstreamURL, client.Options{
		ResultsPath: cfg.ResultsPath,
		VotePath:    cfg.VotePath,
		Timeout:     cfg.FetchTimeout,
	})
}

func sessionOptions(cfg cliparse.Config) session.Options {
	return session.Options{
		RefreshInterval: cfg.RefreshInterval,
		FadeDelay:       cfg.FadeDelay,
		RemoveDelay:     cfg.RemoveDelay,
		DiscardStale:    cfg.DiscardStale,
		Observer:        metrics.SyncObserver{},
	}
}

// runWatch refreshes a terminal results view until ctx is done
func runWatch(ctx context.Context, cfg cliparse.Config, out io.Writer) error {
	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	doc := page.NewMemory(page.WithResultsTable(), page.WithStatusLine())
	view := term.NewView(doc, out)
	view.Draw()

	ms := metrics.NewService(cfg.MetricsAddr)
	go ms.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ms.ShutDown(shutdownCtx)
	}()

	opts := sessionOptions(cfg)
	opts.Observer = livesync.Observers{opts.Observer, view}
	sess := session.New(doc, nil, c, opts)
	sess.Ready(ctx)
	defer sess.Stop()

	<-ctx.Done()
	return nil
}

// runVote walks the confirmation flow for candidate and posts the vote
// only when the flow lets the submission through
func runVote(ctx context.Context, cfg cliparse.Config, dialogs page.Dialogs, candidate string, out io.Writer) error {
	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	candidates := cfg.Candidates
	if len(candidates) == 0 && candidate != "" {
		candidates = []string{candidate}
	}
	doc := page.NewMemory(page.WithVoteForm(candidates...))

	sess := session.New(doc, dialogs, c, sessionOptions(cfg))
	sess.Ready(ctx)
	defer sess.Stop()

	if candidate != "" {
		if err := doc.Select(candidate); err != nil {
			return err
		}
	}

	proceed, err := doc.Submit()
	if err != nil {
		return err
	}
	if !proceed {
		fmt.Fprintln(out, "Vote not submitted.")
		return nil
	}

	if err := c.SubmitVote(ctx, candidate); err != nil {
		return fmt.Errorf("failed to submit vote: %w", err)
	}
	fmt.Fprintln(out, "Vote submitted successfully!")
	return nil
}
