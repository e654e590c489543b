package report

import (
	"github.com/sahilm/fuzzy"
)

// commandFilter keeps command names that fuzzy match a pattern. The zero
// pattern keeps everything.
type commandFilter struct {
	matched map[string]bool
}

func newCommandFilter(pattern string, names []string) *commandFilter {
	if pattern == "" {
		return nil
	}
	matched := make(map[string]bool)
	for _, m := range fuzzy.Find(pattern, names) {
		matched[m.Str] = true
	}
	return &commandFilter{matched: matched}
}

func (f *commandFilter) keep(name string) bool {
	return f == nil || f.matched[name]
}

// keepFunc returns nil when nothing is filtered.
func (f *commandFilter) keepFunc() func(string) bool {
	if f == nil {
		return nil
	}
	return f.keep
}
