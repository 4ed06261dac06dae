package tst

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
	"golang.org/x/text/cases"
)

const (
	uriScheme uriPart = iota + 1
	uriAuthority
	uriPath
	uriQuery
	uriFragment
)

type (
	uriPart int

	URIOption func(*URIIterator)
)

// URIIgnorePathCase sets the predicate deciding, per key, whether the path
// compares case-insensitively.
func URIIgnorePathCase(fn func(u *url.URL) bool) URIOption {
	return func(it *URIIterator) {
		it.ignorePathCase = fn
	}
}

// URIIgnoreQueryAndFragment sets the predicate deciding, per key, whether
// query and fragment are left out of the key.
func URIIgnoreQueryAndFragment(fn func(u *url.URL) bool) URIOption {
	return func(it *URIIterator) {
		it.ignoreQueryAndFragment = fn
	}
}

// URINormalize rewrites every key with purell before it is segmented, e.g.
// purell.FlagRemoveDefaultPort|purell.FlagRemoveDotSegments. Stored keys are
// kept as given.
func URINormalize(flags purell.NormalizationFlags) URIOption {
	return func(it *URIIterator) {
		it.normalize = flags
	}
}

// URIIterator segments a URI into scheme, authority, each path component,
// query and fragment. Parts the URI does not have are skipped. Scheme and
// authority compare case-insensitively, query and fragment exactly.
type URIIterator struct {
	value *url.URL
	parts []uriPart
	idx   int
	path  *PathIterator
	fold  cases.Caser

	normalize              purell.NormalizationFlags
	ignorePathCase         func(u *url.URL) bool
	ignoreQueryAndFragment func(u *url.URL) bool
}

func NewURIIterator(opts ...URIOption) *URIIterator {
	it := &URIIterator{
		path: NewPathIterator(PathSplitBackslash(false)),
		fold: cases.Fold(),
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

func (it *URIIterator) Reset(key *url.URL) KeyIterator[*url.URL] {
	key = it.prepare(key)
	it.value, it.parts, it.idx = key, it.parts[:0], 0

	if key.Scheme != "" {
		it.parts = append(it.parts, uriScheme)
	}
	if authority(key) != "" {
		it.parts = append(it.parts, uriAuthority)
	}
	if p := uriPathOf(key); p != "" {
		it.path.ignoreCase = it.ignorePathCase != nil && it.ignorePathCase(key)
		it.path.Reset(p)
		if it.path.Value() != "" {
			it.parts = append(it.parts, uriPath)
		}
	}
	if it.ignoreQueryAndFragment == nil || !it.ignoreQueryAndFragment(key) {
		if key.RawQuery != "" {
			it.parts = append(it.parts, uriQuery)
		}
		if key.Fragment != "" {
			it.parts = append(it.parts, uriFragment)
		}
	}

	// an empty URI is a single empty path segment
	if len(it.parts) == 0 {
		it.path.Reset("")
		it.parts = append(it.parts, uriPath)
	}
	return it
}

func (it *URIIterator) prepare(key *url.URL) *url.URL {
	if key == nil {
		return &url.URL{}
	}
	if it.normalize == 0 {
		return key
	}
	cp := *key
	if u, err := url.Parse(purell.NormalizeURL(&cp, it.normalize)); err == nil {
		return u
	}
	return key
}

func (it *URIIterator) current() uriPart {
	if it.idx < len(it.parts) {
		return it.parts[it.idx]
	}
	return 0
}

func (it *URIIterator) Next() KeyIterator[*url.URL] {
	if it.current() == uriPath && it.path.HasNext() {
		it.path.Next()
	} else {
		it.idx++
	}
	return it
}

func (it *URIIterator) HasNext() bool {
	return (it.current() == uriPath && it.path.HasNext()) || it.idx < len(it.parts)-1
}

func (it *URIIterator) Cmp(seg string) int {
	switch it.current() {
	case uriScheme:
		return compareSegment(&it.fold, true, seg, it.value.Scheme)
	case uriAuthority:
		return compareSegment(&it.fold, true, seg, authority(it.value))
	case uriPath:
		return it.path.Cmp(seg)
	case uriQuery:
		return strings.Compare(seg, it.value.RawQuery)
	case uriFragment:
		return strings.Compare(seg, it.value.Fragment)
	}
	panic(noSegment("uri"))
}

func (it *URIIterator) Value() string {
	switch it.current() {
	case uriScheme:
		return it.value.Scheme
	case uriAuthority:
		return authority(it.value)
	case uriPath:
		return it.path.Value()
	case uriQuery:
		return it.value.RawQuery
	case uriFragment:
		return it.value.Fragment
	}
	panic(noSegment("uri"))
}

func authority(u *url.URL) string {
	if u.User == nil {
		return u.Host
	}
	return u.User.String() + "@" + u.Host
}

// uriPathOf returns the path of u, or its opaque part for URIs like
// "mailto:someone@example.com".
func uriPathOf(u *url.URL) string {
	if u.Path == "" {
		return u.Opaque
	}
	return u.Path
}
