package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bindings maps a key count to the key identifier of each column.
type Bindings map[int][]string

var DefaultBindings = Bindings{
	4: {"d", "f", "j", "k"},
	5: {"d", "f", "space", "j", "k"},
	6: {"s", "d", "f", "j", "k", "l"},
	7: {"s", "d", "f", "space", "j", "k", "l"},
	8: {"a", "s", "d", "f", "j", "k", "l", ";"},
}

// LoadBindings reads a YAML bindings file such as
//
//	4: [d, f, j, k]
//	7: [s, d, f, space, j, k, l]
//
// Key counts missing from the file keep their defaults.
func LoadBindings(path string) (Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bindings: %w", err)
	}
	return ParseBindings(data)
}

func ParseBindings(data []byte) (Bindings, error) {
	var file Bindings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse bindings: %w", err)
	}
	b := Bindings{}
	for n, keys := range DefaultBindings {
		b[n] = keys
	}
	for n, keys := range file {
		if err := validate(n, keys); err != nil {
			return nil, err
		}
		b[n] = keys
	}
	return b, nil
}

func validate(n int, keys []string) error {
	if len(keys) != n {
		return fmt.Errorf("%dK binding has %d keys", n, len(keys))
	}
	seen := map[string]bool{}
	for _, k := range keys {
		if seen[k] {
			return fmt.Errorf("%dK binding repeats %q", n, k)
		}
		seen[k] = true
	}
	return nil
}

func (b Bindings) Keys(nKeys uint8) ([]string, error) {
	keys, ok := b[int(nKeys)]
	if !ok {
		return nil, fmt.Errorf("no binding for %dK", nKeys)
	}
	return keys, nil
}

// KeyColumn returns the column key is bound to, -1 if it is not bound.
func (b Bindings) KeyColumn(key string, nKeys uint8) int {
	for i, k := range b[int(nKeys)] {
		if k == key {
			return i
		}
	}
	return -1
}
