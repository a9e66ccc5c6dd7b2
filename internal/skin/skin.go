package skin

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Section maps keys to values. An absent key is unset; an empty value is
// an explicit setting.
type Section map[string]string

// Defaults are the asset keys every mania section is backfilled with.
var Defaults = []struct {
	Key, Value string
}{
	{"StageHint", "mania-stage-hint"},
	{"StageLight", "mania-stage-light"},
	{"Hit0", "mania-hit0"},
	{"Hit50", "mania-hit50"},
	{"Hit100", "mania-hit100"},
	{"Hit200", "mania-hit200"},
	{"Hit300", "mania-hit300"},
}

// Backfill sets every default that is absent from s. Present values,
// including empty ones, are kept.
func Backfill(s Section) {
	for _, d := range Defaults {
		if _, ok := s[d.Key]; !ok {
			s[d.Key] = d.Value
		}
	}
}

type Config struct {
	sections map[string]Section
	names    []string
}

var loadOptions = ini.LoadOptions{
	SkipUnrecognizableLines: true,
	IgnoreInlineComment:     true,
	KeyValueDelimiters:      separator,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
}

// quoteRaw wraps values that the ini reader would unquote or read as
// multi-line (leading ` or """) in one more pair of backticks, which the
// reader strips again, so every value comes back verbatim.
func quoteRaw(normalized string) string {
	lines := strings.Split(normalized, "\n")
	for i, line := range lines {
		if isHeader(line) {
			continue
		}
		key, val, ok := strings.Cut(line, separator+" ")
		if !ok || !(strings.HasPrefix(val, "`") || strings.HasPrefix(val, `"""`)) {
			continue
		}
		lines[i] = key + separator + " `" + val + "`"
	}
	return strings.Join(lines, "\n")
}

// Parse normalizes text, parses the sections and backfills every mania
// section.
func Parse(text string) (*Config, error) {
	normalized, err := Normalize(text)
	if nil != err {
		return nil, err
	}

	f, err := ini.LoadSources(loadOptions, []byte(quoteRaw(normalized)))
	if nil != err {
		return nil, fmt.Errorf("unable to parse skin config: %w", err)
	}

	c := &Config{sections: map[string]Section{}}
	for _, sec := range f.Sections() {
		name := sec.Name()
		if name == ini.DEFAULT_SECTION && len(sec.Keys()) == 0 {
			continue
		}
		s := Section{}
		for _, k := range sec.Keys() {
			s[k.Name()] = k.Value()
		}
		if _, ok := maniaKeys(name); ok {
			Backfill(s)
		}
		c.sections[name] = s
		c.names = append(c.names, name)
	}
	return c, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if nil != err {
		return nil, err
	}
	c, err := Parse(string(data))
	if nil != err {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// maniaKeys returns N for a section named Mania<N>.
func maniaKeys(name string) (int, bool) {
	if len(name) <= len(genericSection) || !strings.EqualFold(name[:len(genericSection)], genericSection) {
		return 0, false
	}
	n, err := strconv.Atoi(name[len(genericSection):])
	if nil != err || n <= 0 {
		return 0, false
	}
	return n, true
}

// Sections returns the section names in file order.
func (c *Config) Sections() []string {
	return append([]string(nil), c.names...)
}

func (c *Config) Section(name string) (Section, bool) {
	s, ok := c.sections[name]
	return s, ok
}

// Mania returns the section for a key count.
func (c *Config) Mania(keys int) (Section, bool) {
	for _, name := range c.names {
		if n, ok := maniaKeys(name); ok && n == keys {
			return c.sections[name], true
		}
	}
	return nil, false
}

// KeyCounts lists the key counts that have a mania section, ascending.
func (c *Config) KeyCounts() []int {
	var counts []int
	for _, name := range c.names {
		if n, ok := maniaKeys(name); ok {
			counts = append(counts, n)
		}
	}
	sort.Ints(counts)
	return counts
}

// Keys returns the section's keys sorted.
func (s Section) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
