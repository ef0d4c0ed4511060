package catalog_test

import (
	"os"
	"path"
	"runtime"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/fine-structures/twocolor/catalog"
	"github.com/fine-structures/twocolor/twocolor"
	"github.com/stretchr/testify/require"
)

var exprs = []string{
	"0-1-3, 0-2-4", // demo
	"0-1-2-0",      // triangle
	"0-1-2-3-0",    // 4-cycle
	"0-1, 0-2, 0-3, 0-4",
}

func parseAll(t *testing.T) []twocolor.Graph {
	graphs := make([]twocolor.Graph, len(exprs))
	for i, expr := range exprs {
		X, err := twocolor.ParseGraph(expr)
		require.NoError(t, err)
		graphs[i] = X
	}
	return graphs
}

func TestInMemory(t *testing.T) {
	cat, err := catalog.OpenCatalog(catalog.Opts{})
	require.NoError(t, err)
	defer cat.Close()

	graphs := parseAll(t)
	for _, X := range graphs {
		want, err := twocolor.Colorize(X)
		require.NoError(t, err)

		got, hit, err := cat.Check(X)
		require.NoError(t, err)
		require.False(t, hit)
		require.Equal(t, want, got)

		got, hit, err = cat.Check(X)
		require.NoError(t, err)
		require.True(t, hit)
		require.Equal(t, want, got)
	}
	require.EqualValues(t, len(graphs), cat.NumEntries())

	_, _, err = cat.Check(twocolor.Graph{{3}})
	require.ErrorIs(t, err, twocolor.ErrInvalidGraph)
	require.EqualValues(t, len(graphs), cat.NumEntries())
}

func TestConcurrentCheck(t *testing.T) {
	cat, err := catalog.OpenCatalog(catalog.Opts{})
	require.NoError(t, err)
	defer cat.Close()

	graphs := parseAll(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, X := range graphs {
				if _, _, err := cat.Check(X); err != nil {
					panic(err)
				}
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, len(graphs), cat.NumEntries())
}

func TestPersistence(t *testing.T) {
	dir, err := os.MkdirTemp("", "twocolor*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	opts := catalog.Opts{
		DbPathName: path.Join(dir, "TestPersistence"),
	}
	graphs := parseAll(t)

	{
		cat, err := catalog.OpenCatalog(opts)
		require.NoError(t, err)
		for _, X := range graphs[:2] {
			_, hit, err := cat.Check(X)
			require.NoError(t, err)
			require.False(t, hit)
		}
		require.NoError(t, cat.Close())
	}

	{
		cat, err := catalog.OpenCatalog(opts)
		require.NoError(t, err)
		require.EqualValues(t, 2, cat.NumEntries())

		coloring, hit, err := cat.Check(graphs[1])
		require.NoError(t, err)
		require.True(t, hit)
		require.False(t, coloring.TwoColorable)
		require.NoError(t, cat.Close())
	}

	if runtime.GOOS == "windows" {
		return
	}

	{
		opts.ReadOnly = true
		cat, err := catalog.OpenCatalog(opts)
		require.NoError(t, err)
		require.True(t, cat.IsReadOnly())

		coloring, hit, err := cat.Check(graphs[2])
		require.NoError(t, err)
		require.False(t, hit)
		require.True(t, coloring.TwoColorable)

		_, hit, err = cat.Check(graphs[2])
		require.NoError(t, err)
		require.False(t, hit)
		require.EqualValues(t, 2, cat.NumEntries())
		require.NoError(t, cat.Close())
	}
}

func TestOpenErrors(t *testing.T) {
	_, err := catalog.OpenCatalog(catalog.Opts{ReadOnly: true})
	require.ErrorIs(t, err, catalog.ErrBadCatalogParam)

	dir, err := os.MkdirTemp("", "twocolor*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	dbPathName := path.Join(dir, "TestOpenErrors")
	{
		dbOpts := badger.DefaultOptions(dbPathName)
		dbOpts.Logger = nil
		db, err := badger.Open(dbOpts)
		require.NoError(t, err)

		state := catalog.State{MajorVers: 2022, MinorVers: 1}
		err = db.Update(func(txn *badger.Txn) error {
			return txn.Set([]byte{0x00, 0x00, 0x01}, state.Marshal())
		})
		require.NoError(t, err)
		require.NoError(t, db.Close())
	}

	_, err = catalog.OpenCatalog(catalog.Opts{DbPathName: dbPathName})
	require.ErrorIs(t, err, catalog.ErrIncompatible)
}

func TestStateEncoding(t *testing.T) {
	state := catalog.State{MajorVers: 2024, MinorVers: 1, NumEntries: 123456789}

	var dec catalog.State
	require.NoError(t, dec.Unmarshal(state.Marshal()))
	require.Equal(t, state, dec)

	require.ErrorIs(t, dec.Unmarshal([]byte{0x80}), twocolor.ErrBadEncoding)
}
