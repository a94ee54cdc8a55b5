package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/tomc271/jcamp/internal/jdx"
	"github.com/tomc271/jcamp/internal/spectrum"
)

// LoadLines reads a file into the line sequence the engine consumes.
// Bytes that are not valid UTF-8 are replaced with U+FFFD rather than
// failing the load; vendor files occasionally carry stray Latin-1
// punctuation in free-text headers.
func LoadLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	text := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n"), nil
}

// DecodeFile loads and decodes one JCAMP-DX file, attaching the
// origin path as the "filename" header.
func DecodeFile(path string) (*spectrum.Record, error) {
	lines, err := LoadLines(path)
	if err != nil {
		return nil, err
	}
	rec, err := jdx.Decode(lines)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	rec.SetHeader("filename", spectrum.Str(path))
	return rec, nil
}
