package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonesrussell/alsahih/infrastructure/logger"
)

// DefaultManifestPath is where the static build reads extra prerender routes.
const DefaultManifestPath = ".output/prerender.json"

const manifestRoutesKey = "routes"

// PrerenderOptions configures InjectPrerenderRoutes.
type PrerenderOptions struct {
	IndexPath    string
	ManifestPath string
	Prefix       string
	// Dev skips injection entirely; dev servers render on demand.
	Dev    bool
	Logger logger.Logger
}

func (o *PrerenderOptions) setDefaults() {
	if o.IndexPath == "" {
		o.IndexPath = DefaultIndexPath
	}
	if o.ManifestPath == "" {
		o.ManifestPath = DefaultManifestPath
	}
	if o.Prefix == "" {
		o.Prefix = DefaultRoutePrefix
	}
	if o.Logger == nil {
		o.Logger = logger.NewNop()
	}
}

// InjectPrerenderRoutes appends one route per resolvable index entry to the
// manifest's "routes" list, creating the manifest or the list when absent.
// Other manifest keys are preserved and routes already listed are not added
// twice.
//
// Index problems never fail the build: a missing or malformed index is
// logged as a warning and the manifest is left untouched. Only manifest I/O
// errors are returned.
func InjectPrerenderRoutes(opts PrerenderOptions) (int, error) {
	opts.setDefaults()

	if opts.Dev {
		opts.Logger.Debug("Dev mode, skipping prerender route injection")
		return 0, nil
	}

	entries, err := LoadIndex(opts.IndexPath)
	if err != nil {
		switch {
		case errors.Is(err, ErrIndexMissing):
			opts.Logger.Warn("Content index not found, skipping prerender routes",
				logger.String("path", opts.IndexPath))
		default:
			opts.Logger.Warn("Content index unreadable, skipping prerender routes",
				logger.String("path", opts.IndexPath), logger.Error(err))
		}
		return 0, nil
	}

	manifest, existing, err := readManifest(opts.ManifestPath)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		seen[r] = struct{}{}
	}

	routes := existing
	added := 0
	for route := range RoutePaths(entries, opts.Prefix) {
		if _, dup := seen[route]; dup {
			continue
		}
		seen[route] = struct{}{}
		routes = append(routes, route)
		added++
	}

	if writeErr := writeManifest(opts.ManifestPath, manifest, routes); writeErr != nil {
		return 0, writeErr
	}

	opts.Logger.Info("Added content pages to prerender queue",
		logger.Int("routes", added),
		logger.String("manifest", opts.ManifestPath),
	)
	return added, nil
}

func readManifest(path string) (map[string]json.RawMessage, []string, error) {
	manifest := map[string]json.RawMessage{}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return manifest, []string{}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read prerender manifest %s: %w", path, err)
	}

	if unmarshalErr := json.Unmarshal(data, &manifest); unmarshalErr != nil {
		return nil, nil, fmt.Errorf("parse prerender manifest %s: %w", path, unmarshalErr)
	}
	if manifest == nil {
		manifest = map[string]json.RawMessage{}
	}

	routes := []string{}
	if raw, ok := manifest[manifestRoutesKey]; ok && string(raw) != "null" {
		if unmarshalErr := json.Unmarshal(raw, &routes); unmarshalErr != nil {
			return nil, nil, fmt.Errorf("parse prerender manifest %s: routes: %w", path, unmarshalErr)
		}
	}
	return manifest, routes, nil
}

func writeManifest(path string, manifest map[string]json.RawMessage, routes []string) error {
	encoded, err := json.Marshal(routes)
	if err != nil {
		return fmt.Errorf("encode prerender routes: %w", err)
	}
	manifest[manifestRoutesKey] = encoded

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prerender manifest: %w", err)
	}
	data = append(data, '\n')

	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o755); mkdirErr != nil {
		return fmt.Errorf("create manifest directory: %w", mkdirErr)
	}
	if writeErr := os.WriteFile(path, data, 0o644); writeErr != nil {
		return fmt.Errorf("write prerender manifest %s: %w", path, writeErr)
	}
	return nil
}
