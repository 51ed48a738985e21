package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/danielhkuo/purpose-swipe/apiclient"
	"github.com/danielhkuo/purpose-swipe/deck"
	"github.com/danielhkuo/purpose-swipe/identity"
	"github.com/danielhkuo/purpose-swipe/models"
	"github.com/danielhkuo/purpose-swipe/tui"
)

const defaultServer = "http://localhost:3318"

type options struct {
	server       string
	identityFile string
	logFile      string
	token        string
	verbose      bool

	log *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "purpose-play",
		Short:         "Swipe through purpose cards in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			log, err := newLogger(opts.logFile, opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", envOr("PURPOSE_SERVER_URL", defaultServer), "API base URL (env PURPOSE_SERVER_URL)")
	flags.StringVar(&opts.identityFile, "identity-file", "", "session identifier file (env "+identity.EnvPath+", default in the user config dir)")
	flags.StringVar(&opts.logFile, "log-file", os.Getenv("PURPOSE_LOG_FILE"), "write logs to this file; logs are discarded when empty (env PURPOSE_LOG_FILE)")
	flags.StringVar(&opts.token, "token", os.Getenv("PURPOSE_TOKEN"), "bearer token from login; new sessions belong to that user (env PURPOSE_TOKEN)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newPlayCmd(opts))
	root.AddCommand(newHistoryCmd(opts))
	root.AddCommand(newIdentityCmd(opts))
	root.AddCommand(newRegisterCmd(opts))
	root.AddCommand(newLoginCmd(opts))
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newLogger keeps the terminal clean: logs go to path, or nowhere.
func newLogger(path string, verbose bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func (o *options) client() *apiclient.Client {
	return apiclient.New(o.server,
		apiclient.WithLogger(o.log),
		apiclient.WithToken(o.token),
	)
}

func (o *options) loadIdentity() (string, error) {
	identity.SetPath(o.identityFile)
	return identity.Default()
}

func newPlayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play through the purpose card deck",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := opts.loadIdentity()
			if err != nil {
				return err
			}
			client := opts.client()
			log := opts.log

			return tui.Run(tui.Config{
				LoadCards: client.ListCards,
				NewDeck: func(cards []models.PurposeCard, width float64, onChange func()) *deck.Controller {
					return deck.New(client, deck.Config{
						Cards:         cards,
						SessionData:   identity.SessionData(id),
						ViewportWidth: width,
						Logger:        log,
						OnChange:      onChange,
					})
				},
				Logger: log,
			}, tea.WithContext(commandContext(cmd)))
		},
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List completed sessions with their top purposes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := opts.loadIdentity()
			if err != nil {
				return err
			}
			history, err := opts.client().HistoryWithResults(commandContext(cmd), identity.SessionData(id))
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), history, time.Now())
			return nil
		},
	}
}

func printHistory(w io.Writer, history []apiclient.SessionResults, now time.Time) {
	if len(history) == 0 {
		_, _ = fmt.Fprintln(w, "Complete a session to see your history here!")
		return
	}

	_, _ = fmt.Fprintf(w, "Your Purpose Journey (%d)\n\n", len(history))
	for _, h := range history {
		when := humanize.RelTime(*h.Session.CompletedAt, now, "ago", "from now")
		if h.Results == nil {
			_, _ = fmt.Fprintf(w, "  %-16s results unavailable\n", when)
			continue
		}

		top := make([]string, 0, 3)
		for _, e := range h.Results.Top(3) {
			top = append(top, fmt.Sprintf("%s (%d)", e.Category, e.Count))
		}
		line := strings.Join(top, ", ")
		if line == "" {
			line = "no selections"
		}
		_, _ = fmt.Fprintf(w, "  %-16s %s  %s\n", when, humanize.Plural(h.Results.Total(), "selection", "selections"), line)
	}
}

func newIdentityCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "identity",
		Short: "Print the local session identifier",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := opts.loadIdentity()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newRegisterCmd(opts *options) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := opts.client().Register(commandContext(cmd), args[0], password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "registered %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", os.Getenv("PURPOSE_PASSWORD"), "account password (env PURPOSE_PASSWORD)")
	return cmd
}

func newLoginCmd(opts *options) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Print a bearer token for --token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := opts.client().Login(commandContext(cmd), args[0], password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", os.Getenv("PURPOSE_PASSWORD"), "account password (env PURPOSE_PASSWORD)")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
