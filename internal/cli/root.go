// Package cli implements the catalog build tool: sitemap generation and
// prerender route injection for the static site build.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/alsahih/infrastructure/logger"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// Viper keys and the environment variables bound to them.
const (
	keyIndexPath    = "index"
	keySitemapPath  = "out"
	keySiteURL      = "site-url"
	keyManifestPath = "manifest"
	keyDev          = "dev"
	keyLogLevel     = "log-level"

	envIndexPath    = "CATALOG_INDEX_PATH"
	envSitemapPath  = "CATALOG_SITEMAP_PATH"
	envSiteURL      = "CATALOG_SITE_URL"
	envManifestPath = "CATALOG_PRERENDER_MANIFEST"
	envDev          = "CATALOG_DEV"
	envLogLevel     = "LOG_LEVEL"
)

// Options injects dependencies for tests. Zero values use the process
// defaults: a JSON logger on stderr and stdout for command output.
type Options struct {
	Logger logger.Logger
	Out    io.Writer
}

type app struct {
	v   *viper.Viper
	log logger.Logger
	out io.Writer
}

// NewRootCommand builds the catalog command tree with its own viper instance.
func NewRootCommand(opts Options) *cobra.Command {
	a := &app{v: viper.New(), log: opts.Logger, out: opts.Out}
	if a.out == nil {
		a.out = os.Stdout
	}

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Build-time tooling for the hadith catalog",
		Long:          "Generates the XML sitemap and the prerender route list from the content index.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupLogger()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().String(keyIndexPath, "", "content index path (env "+envIndexPath+")")
	root.PersistentFlags().String(keyLogLevel, "", "log level (env "+envLogLevel+")")
	a.bind(root, keyIndexPath, envIndexPath)
	a.bind(root, keyLogLevel, envLogLevel)

	root.AddCommand(
		a.sitemapCommand(),
		a.routesCommand(),
		a.versionCommand(),
	)
	return root
}

// bind ties a persistent or local flag and an environment variable to key.
// Flag lookups only fail on programmer error, hence the panic.
func (a *app) bind(cmd *cobra.Command, key, env string) {
	flag := cmd.Flags().Lookup(key)
	if flag == nil {
		flag = cmd.PersistentFlags().Lookup(key)
	}
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
	if err := a.v.BindEnv(key, env); err != nil {
		panic(fmt.Sprintf("bind env %s: %v", env, err))
	}
}

func (a *app) setupLogger() error {
	if a.log != nil {
		return nil
	}
	log, err := logger.New(logger.Config{
		Level:       a.v.GetString(keyLogLevel),
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.log = log.With(logger.String("service", "catalog"))
	return nil
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(*cobra.Command, []string) {
			_, _ = fmt.Fprintf(a.out, "catalog version %s\n", Version)
		},
	}
}

// Execute runs the catalog CLI and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCommand(Options{})
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		return 1
	}
	return 0
}
