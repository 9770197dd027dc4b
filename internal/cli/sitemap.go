package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/alsahih/infrastructure/logger"
	"github.com/jonesrussell/alsahih/internal/catalog"
)

func (a *app) sitemapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Generate the XML sitemap from the content index",
		Long: `Reads the content index and writes a sitemap with the home page, the
collection page and one entry per hadith. Fails without writing anything
when the index is missing or malformed.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.runSitemap()
		},
	}

	cmd.Flags().String(keySitemapPath, catalog.DefaultSitemapPath, "sitemap output path (env "+envSitemapPath+")")
	cmd.Flags().String(keySiteURL, catalog.DefaultSiteURL, "public site origin (env "+envSiteURL+")")
	a.bind(cmd, keySitemapPath, envSitemapPath)
	a.bind(cmd, keySiteURL, envSiteURL)
	return cmd
}

func (a *app) runSitemap() error {
	opts := catalog.SitemapOptions{
		IndexPath:  a.v.GetString(keyIndexPath),
		OutputPath: a.v.GetString(keySitemapPath),
		SiteURL:    a.v.GetString(keySiteURL),
		Logger:     a.log,
	}

	count, err := catalog.GenerateSitemap(opts)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrIndexMissing):
			a.log.Error("Content index not found, run the index build first", logger.Error(err))
		case errors.Is(err, catalog.ErrIndexMalformed):
			a.log.Error("Content index is not a JSON array of objects", logger.Error(err))
		default:
			a.log.Error("Sitemap generation failed", logger.Error(err))
		}
		return fmt.Errorf("generate sitemap: %w", err)
	}

	_, _ = fmt.Fprintf(a.out, "sitemap written (%d entries)\n", count)
	return nil
}
