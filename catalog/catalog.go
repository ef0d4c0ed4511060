package catalog

import (
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/fine-structures/twocolor/twocolor"
	"github.com/pkg/errors"
)

/***

Catalog database format:

	gCatalogStateKey => State (MajorVers, MinorVers, NumEntries as uvarints)

	kGraphKeyPrefix, Graph.AppendEncoding() => Coloring.AppendEncoding()
	...

Graph keys are the exact adjacency encoding, so permuting an adjacency list yields a separate entry
(with the same TwoColorable verdict but possibly a different color labeling).

***/

// Errors
var (
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrIncompatible    = errors.New("catalog version is incompatible")
)

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

const (
	kGraphKeyPrefix = 0x01

	kMajorVers = 2024
	kMinorVers = 1
)

// Opts specifies params for opening a Catalog
type Opts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

// State is the bookkeeping record stored alongside catalog entries.
type State struct {
	MajorVers  uint64
	MinorVers  uint64
	NumEntries uint64
}

func (state *State) Marshal() []byte {
	buf := make([]byte, 0, 3*binary.MaxVarintLen64)
	buf = binary.AppendUvarint(buf, state.MajorVers)
	buf = binary.AppendUvarint(buf, state.MinorVers)
	buf = binary.AppendUvarint(buf, state.NumEntries)
	return buf
}

func (state *State) Unmarshal(buf []byte) error {
	for _, field := range []*uint64{&state.MajorVers, &state.MinorVers, &state.NumEntries} {
		val, n := binary.Uvarint(buf)
		if n <= 0 {
			return errors.Wrap(twocolor.ErrBadEncoding, "catalog state")
		}
		*field = val
		buf = buf[n:]
	}
	return nil
}

// Catalog is a db of graph colorings, so that a graph already seen is not checked again.
//
// A Catalog is safe to use from multiple goroutines.
type Catalog struct {
	mu         sync.Mutex
	readOnly   bool
	stateDirty bool
	state      State
	db         *badger.DB
}

// OpenCatalog opens (or creates) a catalog at opts.DbPathName, or an in-memory catalog if no path is given.
func OpenCatalog(opts Opts) (*Catalog, error) {
	cat := &Catalog{
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // writes are serialized by cat.mu
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening catalog %q", opts.DbPathName)
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
	}

	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Wrapf(ErrIncompatible, "catalog is v%d.%d, expected v%d.%d", cat.state.MajorVers, cat.state.MinorVers, kMajorVers, kMinorVers)
	}

	if err != nil {
		cat.stateDirty = false
		cat.Close()
		return nil, err
	}

	return cat, nil
}

func (cat *Catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cat.state.Unmarshal(val)
		})
	})
}

// caller holds cat.mu
func (cat *Catalog) flushState() error {
	if !cat.stateDirty {
		return nil
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, cat.state.Marshal())
	})
	if err != nil {
		return err
	}
	cat.stateDirty = false
	return nil
}

// Close flushes the catalog state and closes the db.
func (cat *Catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return nil
	}

	err := cat.flushState()
	if closeErr := cat.db.Close(); err == nil {
		err = closeErr
	}
	cat.db = nil
	return err
}

// IsReadOnly returns true if this catalog was opened for read-only access.
func (cat *Catalog) IsReadOnly() bool {
	return cat.readOnly
}

// NumEntries returns the number of graphs recorded in this catalog.
func (cat *Catalog) NumEntries() int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return int64(cat.state.NumEntries)
}

func formGraphKey(key []byte, X twocolor.Graph) []byte {
	key = append(key, kGraphKeyPrefix)
	return X.AppendEncoding(key)
}

// Check returns the Coloring of X, from the catalog if X was recorded earlier (hit == true),
// otherwise by running twocolor.Colorize() and recording the result (unless the catalog is read-only).
//
// Invalid graphs return twocolor.ErrInvalidGraph and are never recorded.
func (cat *Catalog) Check(X twocolor.Graph) (coloring *twocolor.Coloring, hit bool, err error) {
	if err = X.Validate(); err != nil {
		return nil, false, err
	}

	key := formGraphKey(make([]byte, 0, 16+4*len(X)), X)

	coloring, err = cat.lookup(key)
	if err == nil {
		return coloring, true, nil
	}
	if err != badger.ErrKeyNotFound {
		return nil, false, err
	}

	coloring, err = twocolor.Colorize(X)
	if err != nil {
		return nil, false, err
	}
	if cat.readOnly {
		return coloring, false, nil
	}

	if err = cat.record(key, coloring); err != nil {
		return nil, false, err
	}
	return coloring, false, nil
}

func (cat *Catalog) lookup(key []byte) (*twocolor.Coloring, error) {
	var coloring *twocolor.Coloring
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			coloring = &twocolor.Coloring{}
			return coloring.InitFromEncoding(val)
		})
	})
	return coloring, err
}

func (cat *Catalog) record(key []byte, coloring *twocolor.Coloring) error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	added := false
	err := cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil // added by another goroutine since lookup()
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.Set(key, coloring.AppendEncoding(nil))
	})
	if err != nil {
		return err
	}

	if added {
		cat.state.NumEntries++
		cat.stateDirty = true
	}
	return nil
}
