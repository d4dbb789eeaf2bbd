package label

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Parser reads PDS label files and extracts their KEY = VALUE pairs.
//
// PDS labels (Planetary Data System, version 3) are line oriented text files.
// Each statement is "KEYWORD = VALUE", optionally followed by a unit in angle
// brackets and a /* comment */. OBJECT / END_OBJECT statements nest groups of
// keywords; the parser flattens them and keeps the first occurrence of a key.
//
// The parser is tolerant: lines it does not understand are skipped, values it
// cannot interpret are reported as missing by the typed accessors.
type Parser interface {
	// Parse reads a label file from disk.
	Parse(filename string) (*Label, error)

	// ParseReader reads a label from r. name is recorded as the label name.
	ParseReader(name string, r io.Reader) (*Label, error)
}

// ParseOptions configures parsing behavior
type ParseOptions struct {
	// KeepObjects: if true, OBJECT and END_OBJECT statements are stored like
	// any other key. Default: false
	KeepObjects bool

	// MaxLineBytes bounds a single label line. Default: 64KiB
	MaxLineBytes int
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		KeepObjects:  false,
		MaxLineBytes: 64 * 1024,
	}
}

// defaultParser implements the Parser interface
type defaultParser struct {
	opts ParseOptions
}

// NewParser creates a new label parser with default options
func NewParser() Parser {
	return &defaultParser{opts: DefaultParseOptions()}
}

// NewParserWithOptions creates a label parser with custom options
func NewParserWithOptions(opts ParseOptions) Parser {
	if opts.MaxLineBytes <= 0 {
		opts.MaxLineBytes = DefaultParseOptions().MaxLineBytes
	}
	return &defaultParser{opts: opts}
}

// Parse reads a label file from disk
func (p *defaultParser) Parse(filename string) (*Label, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open label: %w", err)
	}
	defer f.Close()

	return p.ParseReader(filepath.Base(filename), f)
}

// ParseReader reads a label from r
func (p *defaultParser) ParseReader(name string, r io.Reader) (*Label, error) {
	lbl := newLabel(name)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), p.opts.MaxLineBytes)

	// inQuote tracks a quoted value that continues over several lines,
	// e.g. DESCRIPTION = "...". Its continuation lines are not statements.
	inQuote := false
	for scanner.Scan() {
		line := scanner.Text()

		if inQuote {
			if strings.Count(line, `"`)%2 == 1 {
				inQuote = false
			}
			continue
		}

		key, value, ok := splitStatement(line)
		if !ok {
			continue
		}
		if strings.Count(value, `"`)%2 == 1 {
			inQuote = true
		}
		if !p.opts.KeepObjects && (key == "OBJECT" || key == "END_OBJECT") {
			continue
		}
		lbl.set(key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read label %s: %w", name, err)
	}

	return lbl, nil
}

// splitStatement splits "KEY = VALUE" into an upper-case key and a raw value.
// Pointer statements (^IMAGE = ...) keep their caret.
func splitStatement(line string) (string, string, bool) {
	line = stripComment(line)
	eq := strings.IndexByte(line, '=')
	if eq <= 0 {
		return "", "", false
	}

	key := strings.ToUpper(strings.TrimSpace(line[:eq]))
	if key == "" || strings.ContainsAny(key, " \t\"'") {
		return "", "", false
	}
	return key, strings.TrimSpace(line[eq+1:]), true
}

// stripComment removes a trailing /* ... */ comment. A "/*" inside a quoted
// value is text, not a comment.
func stripComment(line string) string {
	quoted := false
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '"':
			quoted = !quoted
		case !quoted && line[i] == '/' && i+1 < len(line) && line[i+1] == '*':
			return line[:i]
		}
	}
	return line
}
