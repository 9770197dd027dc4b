package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/alsahih/internal/catalog"
)

func (a *app) routesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Append content page routes to the prerender manifest",
		Long: `Build hook for the static site: appends one /bukhari/{slug} route per
content index entry to the prerender manifest. A missing or malformed index
only logs a warning so the site build carries on.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.runRoutes()
		},
	}

	cmd.Flags().String(keyManifestPath, catalog.DefaultManifestPath, "prerender manifest path (env "+envManifestPath+")")
	cmd.Flags().Bool(keyDev, false, "dev mode, skip injection (env "+envDev+")")
	a.bind(cmd, keyManifestPath, envManifestPath)
	a.bind(cmd, keyDev, envDev)
	return cmd
}

func (a *app) runRoutes() error {
	added, err := catalog.InjectPrerenderRoutes(catalog.PrerenderOptions{
		IndexPath:    a.v.GetString(keyIndexPath),
		ManifestPath: a.v.GetString(keyManifestPath),
		Dev:          a.v.GetBool(keyDev),
		Logger:       a.log,
	})
	if err != nil {
		return fmt.Errorf("inject prerender routes: %w", err)
	}

	_, _ = fmt.Fprintf(a.out, "%d prerender routes added\n", added)
	return nil
}
