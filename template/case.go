package template

import (
	"strings"
	"unicode"
)

// CaseStyle is a filename case normalization style.
type CaseStyle string

const (
	CaseNone       CaseStyle = "none"
	CaseLowercase  CaseStyle = "lowercase"
	CaseUppercase  CaseStyle = "uppercase"
	CaseCapitalize CaseStyle = "capitalize"
	CaseTitle      CaseStyle = "title-case"
	CaseKebab      CaseStyle = "kebab-case"
	CaseSnake      CaseStyle = "snake-case"
	CaseCamel      CaseStyle = "camel-case"
	CasePascal     CaseStyle = "pascal-case"
)

// NormalizeFilename applies a case style to the name part of a filename and
// lowercases the extension. Hidden files keep their leading dot.
func NormalizeFilename(filename string, style CaseStyle) string {
	if style == "" || style == CaseNone || filename == "" {
		return filename
	}

	hidden := strings.HasPrefix(filename, ".")
	working := filename
	if hidden {
		working = filename[1:]
	}

	name, ext := working, ""
	if idx := strings.LastIndex(working, "."); idx > 0 {
		name, ext = working[:idx], working[idx:]
	}

	normalized := normalizeCase(name, style)
	prefix := ""
	if hidden {
		prefix = "."
	}
	return prefix + normalized + strings.ToLower(ext)
}

func normalizeCase(name string, style CaseStyle) string {
	words := splitWords(name)
	if len(words) == 0 {
		return name
	}
	switch style {
	case CaseLowercase:
		return strings.ToLower(strings.Join(words, " "))
	case CaseUppercase:
		return strings.ToUpper(strings.Join(words, " "))
	case CaseCapitalize:
		out := make([]string, len(words))
		for i, w := range words {
			if i == 0 {
				out[i] = capitalize(w)
			} else {
				out[i] = strings.ToLower(w)
			}
		}
		return strings.Join(out, " ")
	case CaseTitle:
		out := make([]string, len(words))
		for i, w := range words {
			out[i] = capitalize(w)
		}
		return strings.Join(out, " ")
	case CaseKebab:
		return strings.ToLower(strings.Join(words, "-"))
	case CaseSnake:
		return strings.ToLower(strings.Join(words, "_"))
	case CaseCamel:
		var b strings.Builder
		for i, w := range words {
			if i == 0 {
				b.WriteString(strings.ToLower(w))
			} else {
				b.WriteString(capitalize(w))
			}
		}
		return b.String()
	case CasePascal:
		var b strings.Builder
		for _, w := range words {
			b.WriteString(capitalize(w))
		}
		return b.String()
	}
	return name
}

// splitWords splits on separators and camelCase boundaries.
func splitWords(s string) []string {
	var words []string
	var current strings.Builder
	prevLower := false
	for _, c := range s {
		switch c {
		case ' ', '_', '-', '.':
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
			prevLower = false
			continue
		}
		if unicode.IsUpper(c) && prevLower && current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
		current.WriteRune(c)
		prevLower = unicode.IsLower(c)
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r := []rune(strings.ToLower(w))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
