package build

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"git.home.luguber.info/inful/mdpages/internal/config"
	"git.home.luguber.info/inful/mdpages/internal/page"
)

// IndexPage is the file name a directory listing needs.
const IndexPage = "index.html"

// Result is one written page.
type Result struct {
	Source   string
	Output   string
	Metadata *page.Metadata
}

// Report summarizes a finished build.
type Report struct {
	BuildID string
	Mode    config.BuildMode
	// Results holds every written page, sorted by output path.
	Results []Result
	// MissingIndex lists output directories without an index page, sorted.
	MissingIndex []string
	Duration     time.Duration
}

// Directories groups results by output directory: directory -> file name -> metadata.
func (r *Report) Directories() map[string]map[string]*page.Metadata {
	return GroupByDirectory(r.Results)
}

// GroupByDirectory maps every output directory to the pages written into it.
func GroupByDirectory(results []Result) map[string]map[string]*page.Metadata {
	dirs := make(map[string]map[string]*page.Metadata)
	for _, res := range results {
		dir := filepath.Dir(res.Output)
		if dirs[dir] == nil {
			dirs[dir] = make(map[string]*page.Metadata)
		}
		dirs[dir][filepath.Base(res.Output)] = res.Metadata
	}
	return dirs
}

// MissingIndex returns the sorted directories that received pages but no index page.
func MissingIndex(results []Result) []string {
	var missing []string
	for dir, children := range GroupByDirectory(results) {
		if _, ok := children[IndexPage]; !ok {
			missing = append(missing, dir)
		}
	}
	slices.Sort(missing)
	return missing
}

// collector gathers results from concurrent page tasks. A page written more
// than once keeps its latest result.
type collector struct {
	mu      sync.Mutex
	results map[string]Result
}

func newCollector() *collector {
	return &collector{results: make(map[string]Result)}
}

func (c *collector) add(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[r.Output] = r
}

func (c *collector) sorted() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Result, 0, len(c.results))
	for _, r := range c.results {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Result) int { return strings.Compare(a.Output, b.Output) })
	return out
}
