package catalog

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SitemapNamespace is the sitemap protocol 0.9 namespace.
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// DefaultSiteURL is the public origin used when none is configured.
const DefaultSiteURL = "https://alsa7i7.com"

// Change frequencies used by the generated sitemap.
const (
	ChangeFreqWeekly  = "weekly"
	ChangeFreqMonthly = "monthly"
)

// Priority renders with exactly one decimal, as in "0.8".
type Priority float64

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(p), 'f', 1, 64)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(text []byte) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(text)), 64)
	if err != nil {
		return fmt.Errorf("parse priority: %w", err)
	}
	*p = Priority(f)
	return nil
}

// URLSet is the sitemap document root.
type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapURL is a single <url> entry.
type SitemapURL struct {
	Loc        string   `xml:"loc"`
	ChangeFreq string   `xml:"changefreq"`
	Priority   Priority `xml:"priority"`
}

// ContentCount is the number of entries after the two fixed ones.
func (s *URLSet) ContentCount() int {
	return max(len(s.URLs)-fixedSitemapEntries, 0)
}

const fixedSitemapEntries = 2

// BuildSitemap returns the home page, the collection page and one monthly
// entry per resolvable slug, in index order.
func BuildSitemap(siteURL string, entries []Entry) *URLSet {
	if siteURL == "" {
		siteURL = DefaultSiteURL
	}
	siteURL = strings.TrimRight(siteURL, "/")

	urls := []SitemapURL{
		{Loc: siteURL + "/", ChangeFreq: ChangeFreqWeekly, Priority: 1.0},
		{Loc: siteURL + DefaultRoutePrefix, ChangeFreq: ChangeFreqWeekly, Priority: 0.9},
	}
	for route := range RoutePaths(entries, DefaultRoutePrefix) {
		urls = append(urls, SitemapURL{Loc: siteURL + route, ChangeFreq: ChangeFreqMonthly, Priority: 0.8})
	}

	return &URLSet{Xmlns: SitemapNamespace, URLs: urls}
}

// Encode writes the sitemap as indented UTF-8 XML with a declaration.
func (s *URLSet) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write xml header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush sitemap: %w", err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// WriteSitemap writes the sitemap to path, replacing any existing file. The
// document is written to a temporary file first so a failed write never
// leaves a truncated sitemap behind.
func WriteSitemap(path string, sitemap *URLSet) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sitemap directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".sitemap-*.xml")
	if err != nil {
		return fmt.Errorf("create temp sitemap: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if encErr := sitemap.Encode(tmp); encErr != nil {
		_ = tmp.Close()
		return encErr
	}
	if closeErr := tmp.Close(); closeErr != nil {
		return fmt.Errorf("close temp sitemap: %w", closeErr)
	}
	if chmodErr := os.Chmod(tmpName, 0o644); chmodErr != nil {
		return fmt.Errorf("chmod sitemap: %w", chmodErr)
	}
	if renameErr := os.Rename(tmpName, path); renameErr != nil {
		return fmt.Errorf("replace sitemap %s: %w", path, renameErr)
	}
	return nil
}
