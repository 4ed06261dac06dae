package tst

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
)

type (
	StringOption    func(*StringIterator)
	PathOption      func(*PathIterator)
	ConfigKeyOption func(*ConfigKeyIterator)
)

// StringIgnoreCase makes character comparison case-insensitive.
func StringIgnoreCase() StringOption {
	return func(s *StringIterator) {
		s.ignoreCase = true
	}
}

// PathIgnoreCase sets whether path segments compare case-insensitively.
func PathIgnoreCase(ignore bool) PathOption {
	return func(p *PathIterator) {
		p.ignoreCase = ignore
	}
}

// PathSplitBackslash sets whether '\' separates path segments as well as '/'.
// It is enabled by default.
func PathSplitBackslash(split bool) PathOption {
	return func(p *PathIterator) {
		p.splitBackslash = split
	}
}

// ConfigKeyIgnoreCase makes configuration key segments compare
// case-insensitively.
func ConfigKeyIgnoreCase() ConfigKeyOption {
	return func(c *ConfigKeyIterator) {
		c.ignoreCase = true
	}
}

// compareSegment orders a against b, folding case if asked to.
func compareSegment(fold *cases.Caser, ignoreCase bool, a, b string) int {
	if ignoreCase {
		return strings.Compare(fold.String(a), fold.String(b))
	}
	return strings.Compare(a, b)
}

func noSegment(it string) error {
	return fmt.Errorf("%w: %s", ErrNoSegment, it)
}

// StringIterator yields one segment per user-perceived character (grapheme
// cluster) of a string.
type StringIterator struct {
	cur, rest  string
	state      int
	done       bool
	ignoreCase bool
	fold       cases.Caser
}

func NewStringIterator(opts ...StringOption) *StringIterator {
	s := &StringIterator{fold: cases.Fold()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StringIterator) Reset(key string) KeyIterator[string] {
	s.done = false
	s.cur, s.rest, _, s.state = uniseg.FirstGraphemeClusterInString(key, -1)
	return s
}

func (s *StringIterator) Next() KeyIterator[string] {
	if !s.HasNext() {
		s.done = true
		return s
	}
	s.cur, s.rest, _, s.state = uniseg.FirstGraphemeClusterInString(s.rest, s.state)
	return s
}

func (s *StringIterator) HasNext() bool {
	return !s.done && s.rest != ""
}

func (s *StringIterator) Cmp(seg string) int {
	if s.done {
		panic(noSegment("string"))
	}
	return compareSegment(&s.fold, s.ignoreCase, seg, s.cur)
}

func (s *StringIterator) Value() string {
	if s.done {
		panic(noSegment("string"))
	}
	return s.cur
}

// separated walks the segments of a string delimited by separator bytes.
// Runs of separators count as a single boundary.
type separated struct {
	value      string
	from, to   int
	end        int
	done       bool
	ignoreCase bool
	fold       cases.Caser
	isSep      func(c byte) bool
}

func (s *separated) reset(key string, end int) {
	s.value, s.from, s.to, s.end, s.done = key, 0, 0, end, false
	s.scan()
}

func (s *separated) next() {
	if !s.HasNext() {
		s.done = true
		return
	}
	s.scan()
}

func (s *separated) scan() {
	s.from = s.to
	justSeps := true
	for ; s.to < s.end; s.to++ {
		if s.isSep(s.value[s.to]) {
			if !justSeps {
				break
			}
			s.from++
		} else {
			justSeps = false
		}
	}
}

func (s *separated) HasNext() bool {
	return !s.done && s.to < s.end
}

func (s *separated) Cmp(seg string) int {
	if s.done {
		panic(noSegment("separated"))
	}
	return compareSegment(&s.fold, s.ignoreCase, seg, s.value[s.from:s.to])
}

func (s *separated) Value() string {
	if s.done {
		panic(noSegment("separated"))
	}
	return s.value[s.from:s.to]
}

// PathIterator yields the components of a filesystem-style path. Trailing
// separators are ignored and repeated separators collapse, so "/a//b/" has
// the segments "a" and "b".
type PathIterator struct {
	separated
	splitBackslash bool
}

func NewPathIterator(opts ...PathOption) *PathIterator {
	p := &PathIterator{splitBackslash: true}
	p.fold = cases.Fold()
	p.isSep = func(c byte) bool {
		return c == '/' || p.splitBackslash && c == '\\'
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PathIterator) Reset(key string) KeyIterator[string] {
	end := len(key)
	for end > 0 && p.isSep(key[end-1]) {
		end--
	}
	p.reset(key, end)
	return p
}

func (p *PathIterator) Next() KeyIterator[string] {
	p.next()
	return p
}

// ConfigKeyIterator yields the dot separated parts of a configuration key.
type ConfigKeyIterator struct {
	separated
}

func NewConfigKeyIterator(opts ...ConfigKeyOption) *ConfigKeyIterator {
	c := &ConfigKeyIterator{}
	c.fold = cases.Fold()
	c.isSep = func(b byte) bool { return b == '.' }
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ConfigKeyIterator) Reset(key string) KeyIterator[string] {
	c.reset(key, len(key))
	return c
}

func (c *ConfigKeyIterator) Next() KeyIterator[string] {
	c.next()
	return c
}
