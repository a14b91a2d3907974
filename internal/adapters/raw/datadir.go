package raw

import (
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	perr "ifcb/internal/platform/errors"
	"ifcb/internal/platform/logger"
)

// Directory filtering defaults, matching instrument deployment conventions:
// raw data lands under a "data" subdirectory, and operators park rejected
// acquisitions under "skip" or "beads"
var (
	DefaultWhitelist = []string{"data"}
	DefaultBlacklist = []string{"skip", "beads"}
)

// DataDirectory discovers filesets under a root. Only whitelisted immediate
// subdirectories of the root are searched; blacklisted directory names are
// pruned at any depth. Iteration is in lexical path order, which for pid
// file names is chronological per instrument
type DataDirectory struct {
	root      string
	whitelist []string
	blacklist []string
}

// Option configures a DataDirectory
type Option func(*DataDirectory)

// WithWhitelist replaces the set of searchable root subdirectory names
func WithWhitelist(names ...string) Option {
	return func(d *DataDirectory) { d.whitelist = names }
}

// WithBlacklist replaces the set of directory names pruned during search
func WithBlacklist(names ...string) Option {
	return func(d *DataDirectory) { d.blacklist = names }
}

// NewDataDirectory wraps a root path for discovery
func NewDataDirectory(root string, opts ...Option) *DataDirectory {
	d := &DataDirectory{
		root:      root,
		whitelist: DefaultWhitelist,
		blacklist: DefaultBlacklist,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the root path
func (d *DataDirectory) Root() string { return d.root }

// All iterates discovered filesets lazily, in lexical order. Triplets with
// missing members are skipped, as are base names that are not valid pids.
// Walk errors end the sequence with a non-nil error
func (d *DataDirectory) All() iter.Seq2[*Fileset, error] {
	return func(yield func(*Fileset, error) bool) {
		tops, err := os.ReadDir(d.root)
		if err != nil {
			yield(nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "read data root"))
			return
		}
		for _, top := range tops {
			if !top.IsDir() || !slices.Contains(d.whitelist, top.Name()) {
				continue
			}
			if !d.walk(filepath.Join(d.root, top.Name()), yield) {
				return
			}
		}
	}
}

// walk recurses one directory in ReadDir (lexical) order
func (d *DataDirectory) walk(dir string, yield func(*Fileset, error) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return yield(nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "read data dir"))
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			if slices.Contains(d.blacklist, name) {
				continue
			}
			if !d.walk(filepath.Join(dir, name), yield) {
				return false
			}
			continue
		}
		base, ok := strings.CutSuffix(name, ".adc")
		if !ok {
			continue
		}
		fs := NewFileset(filepath.Join(dir, base))
		if !fs.Exists() {
			logger.Named("raw").Debug().
				Str("lid", base).Msg("incomplete fileset skipped")
			continue
		}
		if !fs.Pid().Valid() {
			logger.Named("raw").Debug().
				Str("name", base).Msg("non-pid base name skipped")
			continue
		}
		if !yield(fs, nil) {
			return false
		}
	}
	return true
}

// Find returns the fileset for a lid, or a not-found error
func (d *DataDirectory) Find(lid string) (*Fileset, error) {
	for fs, err := range d.All() {
		if err != nil {
			return nil, err
		}
		if fs.Lid() == lid {
			return fs, nil
		}
	}
	return nil, perr.NotFoundf("no fileset %s under %s", lid, d.root)
}

// DataDirs lists descendant directories that directly contain record files.
// Blacklisted names are pruned; descent stops at the first directory that
// holds data (nested data directories are not expected)
func (d *DataDirectory) DataDirs() ([]string, error) {
	var out []string
	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnavailable, "read data dir")
		}
		hasData := false
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".adc") {
				hasData = true
				break
			}
		}
		if hasData {
			out = append(out, dir)
			return nil
		}
		for _, e := range entries {
			if e.IsDir() && !slices.Contains(d.blacklist, e.Name()) {
				if err := walk(filepath.Join(dir, e.Name())); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(d.root); err != nil {
		return nil, err
	}
	return out, nil
}
