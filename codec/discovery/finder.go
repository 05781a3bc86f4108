// This file contains the implementation of a finder over the process catalog
// and over a directory of Go plugins.

package discovery

import (
	"os"
	"path/filepath"
	"plugin"

	"github.com/rs/zerolog"
	codecs "github.com/sunxiaotianmg/fo-dicom.Codecs"
	"golang.org/x/xerrors"
)

// symbolTable is the part of a loaded plugin used by the finder.
type symbolTable interface {
	Lookup(name string) (plugin.Symbol, error)
}

type opener func(path string) (symbolTable, error)

func openPlugin(path string) (symbolTable, error) {
	return plugin.Open(path)
}

// FinderOption is the type of options to create a finder.
type FinderOption func(*finder)

// WithCatalog sets the catalog used for the process image source. The default
// catalog is used otherwise.
func WithCatalog(c *Catalog) FinderOption {
	return func(f *finder) {
		f.catalog = c
	}
}

// WithLogger sets the logger of the finder.
func WithLogger(l zerolog.Logger) FinderOption {
	return func(f *finder) {
		f.logger = l
	}
}

// finder finds candidates either in a catalog or in a directory of plugins.
//
// - implements discovery.Finder
type finder struct {
	catalog *Catalog
	logger  zerolog.Logger
	open    opener
}

// NewFinder returns a new finder.
func NewFinder(opts ...FinderOption) Finder {
	f := &finder{
		catalog: DefaultCatalog,
		logger:  codecs.Logger.With().Str("module", "discovery").Logger(),
		open:    openPlugin,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// FindCandidates implements discovery.Finder. It returns an iterator over the
// catalog for the process image, or over the plugins of the directory
// otherwise. An invalid pattern or an unreadable directory gives an empty
// iterator.
func (f *finder) FindCandidates(src Source) CandidateIterator {
	pattern := src.GetPattern()

	_, err := filepath.Match(pattern, "")
	if err != nil {
		f.logger.Debug().Err(err).Str("pattern", pattern).Msg("invalid pattern")
		return &sliceIterator{}
	}

	if src.IsProcess() {
		return &sliceIterator{candidates: f.filterCatalog(pattern)}
	}

	files, err := listPlugins(src.Path, pattern)
	if err != nil {
		f.logger.Debug().Err(err).Str("path", src.Path).Msg("cannot scan directory")
		return &sliceIterator{}
	}

	return &pluginIterator{
		files:  files,
		open:   f.open,
		logger: f.logger,
	}
}

func (f *finder) filterCatalog(pattern string) []Candidate {
	all := f.catalog.Candidates()
	res := make([]Candidate, 0, len(all))

	for _, c := range all {
		// The pattern has been validated beforehand.
		matched, _ := filepath.Match(pattern, c.ShortName())
		if matched {
			res = append(res, c)
		}
	}

	return res
}

// listPlugins returns the regular files of the directory matching the pattern
// in lexical order.
func listPlugins(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, xerrors.Errorf("failed to read directory: %v", err)
	}

	files := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matched, _ := filepath.Match(pattern, entry.Name())
		if matched {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// loadPlugin opens the plugin and returns the candidates declared by its entry
// point.
func loadPlugin(open opener, path string) ([]Candidate, error) {
	table, err := open(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to open plugin: %v", err)
	}

	sym, err := table.Lookup(EntryPoint)
	if err != nil {
		return nil, xerrors.Errorf("entry point not found: %v", err)
	}

	declare, ok := sym.(func(*Catalog))
	if !ok {
		return nil, xerrors.Errorf("invalid entry point type '%T'", sym)
	}

	catalog := NewCatalog()
	declare(catalog)

	return catalog.Candidates(), nil
}

// sliceIterator is an iterator over a list of candidates.
//
// - implements discovery.CandidateIterator
type sliceIterator struct {
	candidates []Candidate
	index      int
}

// HasNext implements discovery.CandidateIterator.
func (it *sliceIterator) HasNext() bool {
	return it.index < len(it.candidates)
}

// GetNext implements discovery.CandidateIterator.
func (it *sliceIterator) GetNext() Candidate {
	if !it.HasNext() {
		return Candidate{}
	}

	c := it.candidates[it.index]
	it.index++

	return c
}

// pluginIterator is an iterator over the candidates of a list of plugins. A
// plugin is opened only when the candidates of the previous ones have been
// consumed.
//
// - implements discovery.CandidateIterator
type pluginIterator struct {
	files   []string
	open    opener
	logger  zerolog.Logger
	current sliceIterator
}

// HasNext implements discovery.CandidateIterator. It opens the next plugins
// until one of them provides a candidate.
func (it *pluginIterator) HasNext() bool {
	for !it.current.HasNext() {
		if len(it.files) == 0 {
			return false
		}

		path := it.files[0]
		it.files = it.files[1:]

		candidates, err := loadPlugin(it.open, path)
		if err != nil {
			it.logger.Debug().Err(err).Str("plugin", path).Msg("plugin ignored")
			continue
		}

		it.logger.Debug().
			Str("plugin", path).
			Int("candidates", len(candidates)).
			Msg("plugin loaded")

		it.current = sliceIterator{candidates: candidates}
	}

	return true
}

// GetNext implements discovery.CandidateIterator.
func (it *pluginIterator) GetNext() Candidate {
	if !it.HasNext() {
		return Candidate{}
	}

	return it.current.GetNext()
}
