package tst

import (
	"net/url"
	"testing"

	"github.com/PuerkitoBio/purell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func always(*url.URL) bool { return true }

func TestURIIterator(t *testing.T) {
	dataSet := []struct {
		raw      string
		expected []string
	}{
		{"", []string{""}},
		{"file:///", []string{"file"}},
		{"file:///usr/local/bin", []string{"file", "usr", "local", "bin"}},
		{"http://example.com", []string{"http", "example.com"}},
		{"http://user@example.com:8080/a/b?x=1#frag", []string{"http", "user@example.com:8080", "a", "b", "x=1", "frag"}},
		{"http://example.com?q", []string{"http", "example.com", "q"}},
		{"http://example.com#top", []string{"http", "example.com", "top"}},
		{"mailto:someone@example.com", []string{"mailto", "someone@example.com"}},
		{"/relative//path/", []string{"relative", "path"}},
	}

	it := NewURIIterator()
	for _, d := range dataSet {
		assert.Equal(t, d.expected, segmentsOf[*url.URL](it, mustParse(t, d.raw)), d.raw)
	}

	assert.Equal(t, []string{""}, segmentsOf[*url.URL](it, nil))

	it = NewURIIterator(URIIgnoreQueryAndFragment(always))
	assert.Equal(t, []string{"http", "example.com", "a"},
		segmentsOf[*url.URL](it, mustParse(t, "http://example.com/a?x=1#frag")))
}

func TestURIIteratorCmp(t *testing.T) {
	it := NewURIIterator()
	it.Reset(mustParse(t, "http://Example.com/Path?Q#F"))

	assert.Equal(t, 0, it.Cmp("HTTP"))
	it.Next()
	assert.Equal(t, 0, it.Cmp("EXAMPLE.COM"))
	it.Next()
	assert.Equal(t, 0, it.Cmp("Path"))
	assert.NotEqual(t, 0, it.Cmp("path"))
	it.Next()
	assert.Equal(t, 0, it.Cmp("Q"))
	assert.NotEqual(t, 0, it.Cmp("q"))
	it.Next()
	assert.Equal(t, "F", it.Value())
	assert.NotEqual(t, 0, it.Cmp("f"))

	assert.False(t, it.HasNext())
	it.Next()
	assertNoSegment(t, func() { it.Value() })
	assertNoSegment(t, func() { it.Cmp("F") })
}

func TestURITree(t *testing.T) {
	tr := NewURITree[int]()
	tr.Set(mustParse(t, "http://example.com/a"), 1)
	tr.Set(mustParse(t, "http://example.com/a/b"), 2)
	tr.Set(mustParse(t, "http://example.com/a?x=1"), 3)

	v, ok := tr.Get(mustParse(t, "http://EXAMPLE.com/a"))
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = tr.Get(mustParse(t, "http://example.com/A"))
	assert.False(t, ok)
	_, ok = tr.Get(mustParse(t, "http://example.com/a?x=2"))
	assert.False(t, ok)

	v, ok = tr.FindSubstr(mustParse(t, "http://example.com/a/b/c"))
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = tr.FindSubstr(mustParse(t, "http://example.com/a/x"))
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = tr.FindSubstr(mustParse(t, "https://example.com/a"))
	assert.False(t, ok)

	assert.Equal(t, 2, tr.DeleteSuperstr(mustParse(t, "http://example.com/a")))
	assert.Equal(t, 1, tr.Size())
	assert.True(t, tr.(*tree[*url.URL, int]).isBalanced())
}

func TestURITreeIgnorePathCase(t *testing.T) {
	tree := NewURITree[int](URIIgnorePathCase(func(u *url.URL) bool {
		return u.Scheme == "file"
	}))
	tree.Set(mustParse(t, "file:///C/Users/Foo"), 1)
	tree.Set(mustParse(t, "http://example.com/Foo"), 2)

	v, ok := tree.Get(mustParse(t, "file:///c/users/foo"))
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = tree.Get(mustParse(t, "http://example.com/foo"))
	assert.False(t, ok)
}

func TestURITreeIgnoreQueryAndFragment(t *testing.T) {
	tree := NewURITree[int](URIIgnoreQueryAndFragment(always))
	tree.Set(mustParse(t, "http://example.com/a?x=1"), 1)

	v, ok := tree.Get(mustParse(t, "http://example.com/a?x=2#y"))
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	old, replaced := tree.Set(mustParse(t, "http://example.com/a"), 2)
	assert.True(t, replaced)
	assert.Equal(t, 1, old)
}

func TestURITreeNormalize(t *testing.T) {
	tree := NewURITree[int](URINormalize(purell.FlagRemoveDefaultPort | purell.FlagRemoveDotSegments))
	key := mustParse(t, "http://example.com:80/a/./b")
	tree.Set(key, 1)

	v, ok := tree.Get(mustParse(t, "http://example.com/a/b"))
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	// the key is stored as given
	for k := range tree.All() {
		assert.Equal(t, "http://example.com:80/a/./b", k.String())
	}
	assert.Equal(t, "http://example.com:80/a/./b", key.String())
}
