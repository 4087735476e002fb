// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// BeginMarker opens the generated region. Any line whose trimmed text
	// starts with it is a begin marker.
	BeginMarker = "// manifestgen:begin"
	// EndMarker closes the generated region.
	EndMarker = "// manifestgen:end"

	// BeginLine is the begin marker line written by Assemble.
	BeginLine = BeginMarker + " (generated by manifestgen; do not edit)"
	// EndLine is the end marker line written by Assemble.
	EndLine = EndMarker
)

// ErrManifestParse is the sentinel for manifests with malformed markers.
var ErrManifestParse = errors.New("manifest parse error")

type (
	// ParseError reports a malformed marker. It wraps ErrManifestParse for
	// errors.Is() compatibility.
	ParseError struct {
		// Line is the 1-based line of the offending marker, or 0 when the
		// problem is a missing marker.
		Line   int
		Reason string
	}

	// Components are the hand-written parts of a manifest.
	Components struct {
		// Prefix is the text preceding the generated region, including the
		// separator inserted when the manifest had no region yet.
		Prefix string
		// Suffix is the text following the generated region. It is empty
		// when the manifest had no region.
		Suffix string
		// HasRegion reports whether the manifest already had markers.
		HasRegion bool
	}

	markerKind int
)

const (
	noMarker markerKind = iota
	beginMarker
	endMarker
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}

// Unwrap returns ErrManifestParse for errors.Is() compatibility.
func (e *ParseError) Unwrap() error { return ErrManifestParse }

// Split returns the hand-written prefix and suffix of manifest.
//
// With markers present, the prefix is everything before the begin marker
// line and the suffix everything after the end marker line. Without
// markers, the prefix is the whole manifest with trailing whitespace
// replaced by a single blank line, and there is no suffix.
func Split(manifest string) (Components, error) {
	beginOffset, beginLine := -1, 0
	endOffset, endLine := -1, 0

	offset := 0
	for lineNo := 1; offset < len(manifest); lineNo++ {
		next := len(manifest)
		if i := strings.IndexByte(manifest[offset:], '\n'); i >= 0 {
			next = offset + i + 1
		}

		switch classify(manifest[offset:next]) {
		case beginMarker:
			if beginOffset >= 0 {
				return Components{}, &ParseError{Line: lineNo, Reason: fmt.Sprintf("duplicate begin marker (first on line %d)", beginLine)}
			}
			if endOffset >= 0 {
				return Components{}, &ParseError{Line: endLine, Reason: "end marker before begin marker"}
			}
			beginOffset, beginLine = offset, lineNo
		case endMarker:
			if endOffset >= 0 {
				return Components{}, &ParseError{Line: lineNo, Reason: fmt.Sprintf("duplicate end marker (first on line %d)", endLine)}
			}
			endOffset, endLine = next, lineNo
		}

		offset = next
	}

	switch {
	case beginOffset < 0 && endOffset < 0:
		return Components{Prefix: appendSeparator(manifest)}, nil
	case endOffset < 0:
		return Components{}, &ParseError{Line: beginLine, Reason: "begin marker without matching end marker"}
	case beginOffset < 0:
		return Components{}, &ParseError{Line: endLine, Reason: "end marker without matching begin marker"}
	}

	return Components{
		Prefix:    manifest[:beginOffset],
		Suffix:    manifest[endOffset:],
		HasRegion: true,
	}, nil
}

// Assemble joins the hand-written parts and the generated text into a
// complete manifest. Trailing newlines of generated are dropped.
func Assemble(c Components, generated string) string {
	var b strings.Builder
	b.WriteString(c.Prefix)
	b.WriteString(BeginLine)
	b.WriteByte('\n')
	if block := strings.TrimRight(generated, "\n"); block != "" {
		b.WriteString(block)
		b.WriteByte('\n')
	}
	b.WriteString(EndLine)
	b.WriteByte('\n')
	b.WriteString(c.Suffix)
	return b.String()
}

// Splice replaces the generated region of manifest with generated. Splicing
// the same text twice yields the same manifest as splicing it once.
func Splice(manifest, generated string) (string, error) {
	components, err := Split(manifest)
	if err != nil {
		return "", err
	}
	return Assemble(components, generated), nil
}

func classify(line string) markerKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, BeginMarker):
		return beginMarker
	case trimmed == EndMarker:
		return endMarker
	default:
		return noMarker
	}
}

// appendSeparator trims trailing whitespace and separates the existing
// content from the region with a blank line.
func appendSeparator(manifest string) string {
	trimmed := strings.TrimRight(manifest, " \t\r\n")
	if trimmed == "" {
		return ""
	}
	return trimmed + "\n\n"
}
