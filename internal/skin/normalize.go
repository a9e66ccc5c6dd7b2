// Package skin reads skin.ini style skin configs. Generic [Mania]
// sections are renamed for the key count they declare before the text is
// parsed, and missing stage and hit-flash assets are given defaults.
package skin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	commentMarker = "//"
	separator     = ":"

	genericSection = "Mania"
	keysKey        = "Keys"
)

var (
	ErrMissingKeys = errors.New("missing Keys declaration")
	ErrBadKeys     = errors.New("invalid Keys declaration")
)

// SectionError reports a generic section that could not be renamed.
type SectionError struct {
	Line int // 1-based line of the section header
	Err  error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("[%s] section at line %d: %v", genericSection, e.Line, e.Err)
}

func (e *SectionError) Unwrap() error { return e.Err }

func isHeader(line string) bool {
	return strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]")
}

func isGeneric(line string) bool {
	return strings.EqualFold(line, "["+genericSection+"]")
}

// concreteSection is the section name a generic section declaring keys
// key columns is renamed to.
func concreteSection(keys int) string {
	return genericSection + strconv.Itoa(keys)
}

func splitKeyVal(line string) (key, val string, ok bool) {
	i := strings.IndexAny(line, ":=")
	if i <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:i])
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(line[i+1:]), true
}

// normalizeLine trims the line and rewrites "Key=Value" and "Key :Value"
// forms to "Key: Value".
func normalizeLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || isHeader(line) {
		return line
	}
	key, val, ok := splitKeyVal(line)
	if !ok {
		return line
	}
	if val == "" {
		return key + separator
	}
	return key + separator + " " + val
}

// Normalize strips comment lines, canonicalises key/value separators and
// renames every generic [Mania] header to [Mania<N>], N being the second
// token of the first Keys line in that section. It is idempotent.
func Normalize(text string) (string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var (
		lines   []string
		lineNos []int
	)
	for i, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), commentMarker) {
			continue
		}
		lines = append(lines, normalizeLine(line))
		lineNos = append(lineNos, i+1)
	}

	for i, line := range lines {
		if !isGeneric(line) {
			continue
		}
		keys, err := declaredKeys(lines[i+1:])
		if nil != err {
			return "", &SectionError{Line: lineNos[i], Err: err}
		}
		lines[i] = "[" + concreteSection(keys) + "]"
	}

	return strings.Join(lines, "\n"), nil
}

// declaredKeys finds the Keys declaration in the lines following a section
// header, stopping at the next header.
func declaredKeys(lines []string) (int, error) {
	for _, line := range lines {
		if isHeader(line) {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || !strings.EqualFold(strings.TrimRight(fields[0], ":="), keysKey) {
			continue
		}
		if len(fields) < 2 {
			return 0, fmt.Errorf("%w: %q", ErrBadKeys, line)
		}
		n, err := strconv.Atoi(fields[1])
		if nil != err || n <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadKeys, line)
		}
		return n, nil
	}
	return 0, ErrMissingKeys
}
