package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges, and general fuzzing
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	// make sure the btree is empty at start but returns results
	// that are written to it
	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assertGetHas(t, cache, k2, nil, false)
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assertGetHas(t, base, k, v, true)
	assertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	require.NoError(t, c2.Delete(k2))
	assertGetHas(t, c2, k3, v3, true)
	assertGetHas(t, c2, k2, nil, false)
	c2.Discard()
	assertGetHas(t, base, k3, nil, false)
	assertGetHas(t, base, k2, v2, true)

	// and commit a delete
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k2))
	require.NoError(t, c3.Write())
	assertGetHas(t, base, k2, nil, false)
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	for i := 0; i < 6; i++ {
		require.NoError(t, base.Set([]byte(fmt.Sprintf("key-%d", i)), []byte{byte(i)}))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Delete([]byte("key-2")))
	require.NoError(t, cache.Set([]byte("key-4"), []byte("new")))
	require.NoError(t, cache.Set([]byte("key-45"), []byte("inserted")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []string
	}{
		"all ascending": {
			want: []string{"key-0", "key-1", "key-3", "key-4", "key-45", "key-5"},
		},
		"bounded ascending": {
			start: []byte("key-1"),
			end:   []byte("key-45"),
			want:  []string{"key-1", "key-3", "key-4"},
		},
		"all descending": {
			reverse: true,
			want:    []string{"key-5", "key-45", "key-4", "key-3", "key-1", "key-0"},
		},
		"bounded descending": {
			start:   []byte("key-1"),
			end:     []byte("key-45"),
			reverse: true,
			want:    []string{"key-4", "key-3", "key-1"},
		},
		"open end descending": {
			start:   []byte("key-4"),
			reverse: true,
			want:    []string{"key-5", "key-45", "key-4"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				iter Iterator
				err  error
			)
			if tc.reverse {
				iter, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				iter, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			defer iter.Close()

			var got []string
			for ; iter.Valid(); require.NoError(t, iter.Next()) {
				got = append(got, string(iter.Key()))
			}
			assert.Equal(t, tc.want, got)
		})
	}

	v, err := cache.Get([]byte("key-4"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestLogableStoreRecordsOps(t *testing.T) {
	kv, ops := LogableStore()
	require.NoError(t, kv.Set([]byte("a"), []byte("1")))
	require.NoError(t, kv.Delete([]byte("b")))
	assert.Equal(t, []Op{SetOp([]byte("a"), []byte("1")), DelOp([]byte("b"))}, ops.ShowOps())
}

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}
