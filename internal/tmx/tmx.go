// Package tmx reads and writes TMX 1.4b translation memories as alignment
// documents. Parsing reduces each file to its two dominant languages;
// serialization emits canonical, pretty-printed TMX. Inline markup inside
// <seg> elements travels through cells verbatim.
package tmx

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

const (
	tmxVersion          = "1.4"
	creationTool        = "tmxalign"
	creationToolVersion = "1.0"
)

// ParseError reports a TMX document that could not be loaded: malformed
// XML, a non-TMX root, missing header or body, or fewer than two
// languages.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "tmx: " + e.Reason }

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}

// normalizeLang canonicalizes a language code ("EN-us" → "en-US"). Codes
// the BCP-47 parser rejects fall back to plain lowercasing, so legacy
// values still compare consistently.
func normalizeLang(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if tag, err := language.Parse(s); err == nil {
		return tag.String()
	}
	return strings.ToLower(s)
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}
