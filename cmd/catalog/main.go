// Command catalog generates the sitemap and prerender routes for the site.
package main

import (
	"context"
	"os"

	"github.com/jonesrussell/alsahih/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:]))
}
