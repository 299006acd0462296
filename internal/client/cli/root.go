package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/newsexplorer/internal/buildinfo"
	"github.com/dmitrijs2005/newsexplorer/internal/client/config"
	"github.com/dmitrijs2005/newsexplorer/internal/logging"
	"github.com/spf13/cobra"
)

// appFactory is a test seam for NewApp.
var appFactory = NewApp

func NewRootCmd() *cobra.Command {
	var flags *config.Flags

	// withApp resolves the config, builds the App, restores the stored
	// session and hands the App to fn.
	withApp := func(fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Resolve()
			if err != nil {
				return err
			}
			log := logging.NewTextLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := appFactory(ctx, cfg, log, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() {
				if cerr := a.Close(); cerr != nil {
					log.Warn(ctx, "close failed", "error", cerr)
				}
			}()
			return fn(ctx, a, args)
		}
	}

	cmd := &cobra.Command{
		Use:          "newsexplorer",
		Short:        "Search the news and keep the articles worth reading",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive client
  newsexplorer

  # One-shot search over the last seven days
  newsexplorer search national parks

  # Use RSS feeds instead of the news API
  newsexplorer --source rss --feed https://www.nps.gov/feeds/getNewsRSS.htm search bison
`),
		Args: cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			return a.Run(ctx)
		}),
	}

	flags = config.BindFlags(cmd.PersistentFlags())

	var all bool
	searchCmd := &cobra.Command{
		Use:   "search <keywords...>",
		Short: "Search news from the last week",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(func(ctx context.Context, a *App, args []string) error {
			a.restore(ctx)
			if err := a.Search(ctx, strings.Join(args, " ")); err != nil {
				return err
			}
			for all && a.search.HasMore() {
				_ = a.More(ctx)
			}
			return nil
		}),
	}
	searchCmd.Flags().BoolVar(&all, "all", false, "print every result instead of the first page")

	cmd.AddCommand(
		searchCmd,
		&cobra.Command{
			Use:   "saved",
			Short: "List saved articles",
			Args:  cobra.NoArgs,
			RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
				a.restore(ctx)
				return a.Saved(ctx)
			}),
		},
		&cobra.Command{
			Use:   "login",
			Short: "Sign in and remember the session",
			Args:  cobra.NoArgs,
			RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
				a.restore(ctx)
				return a.Login(ctx)
			}),
		},
		&cobra.Command{
			Use:   "register",
			Short: "Create an account",
			Args:  cobra.NoArgs,
			RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
				a.restore(ctx)
				return a.Register(ctx)
			}),
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the stored session",
			Args:  cobra.NoArgs,
			RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
				a.restore(ctx)
				return a.Logout(ctx)
			}),
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the signed-in user",
			Args:  cobra.NoArgs,
			RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
				a.restore(ctx)
				return a.Whoami(ctx)
			}),
		},
		newVersionCmd(),
	)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
