// Package sanitize normalizes candidate filenames so they are valid on the
// target platform(s). It never fails; every mutation is reported as a typed
// change record.
package sanitize

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform selects which platform's filename rules to enforce.
type Platform string

const (
	PlatformAll     Platform = "all"
	PlatformWindows Platform = "windows"
	PlatformMacOS   Platform = "macos"
	PlatformLinux   Platform = "linux"
	PlatformCurrent Platform = "current"
)

// TruncationStyle controls how over-long names are shortened.
type TruncationStyle string

const (
	TruncateEllipsis TruncationStyle = "ellipsis"
	TruncateNone     TruncationStyle = "none"
)

// Change types recorded during sanitization.
const (
	ChangeCharReplacement = "char_replacement"
	ChangeReservedName    = "reserved_name"
	ChangeTrailingFix     = "trailing_fix"
	ChangeTruncation      = "truncation"
)

// Options configure a sanitization run. The zero value is usable: it targets
// all platforms with '_' replacement, a 255 byte budget and ellipsis
// truncation.
type Options struct {
	Platform    Platform
	Replacement rune
	MaxLength   int
	Truncation  TruncationStyle
}

// Change describes one mutation applied to the input.
type Change struct {
	Type        string `json:"type"`
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Message     string `json:"message"`
}

// Result is the outcome of a sanitization run.
type Result struct {
	Sanitized   string   `json:"sanitized"`
	Original    string   `json:"original"`
	Changes     []Change `json:"changes"`
	WasModified bool     `json:"wasModified"`
}

const ellipsis = "..."

// reserved device names on Windows; matched case-insensitively against the
// bare name (extension stripped)
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

func (o Options) normalized() Options {
	if o.Platform == "" {
		o.Platform = PlatformAll
	}
	if o.Platform == PlatformCurrent {
		switch runtime.GOOS {
		case "windows":
			o.Platform = PlatformWindows
		case "darwin":
			o.Platform = PlatformMacOS
		default:
			o.Platform = PlatformLinux
		}
	}
	if o.Replacement == 0 {
		o.Replacement = '_'
	}
	if o.MaxLength <= 0 {
		o.MaxLength = 255
	}
	if o.Truncation == "" {
		o.Truncation = TruncateEllipsis
	}
	return o
}

func invalidOn(p Platform, c rune) bool {
	if c == 0 || c == '/' {
		return true
	}
	switch p {
	case PlatformWindows, PlatformAll:
		if c < 32 {
			return true
		}
		switch c {
		case '\\', ':', '*', '?', '"', '<', '>', '|':
			return true
		}
		return false
	case PlatformMacOS:
		return c == ':'
	default: // linux
		return false
	}
}

func windowsCompatible(p Platform) bool {
	return p == PlatformWindows || p == PlatformAll
}

// Name sanitizes a candidate filename. Empty input is returned unmodified.
func Name(name string, opts Options) Result {
	opts = opts.normalized()
	res := Result{Original: name, Sanitized: name, Changes: []Change{}}
	if name == "" {
		return res
	}

	s := name

	// 1. replace platform-invalid characters, recording each distinct one
	var replaced []rune
	seen := map[rune]bool{}
	var b strings.Builder
	for _, c := range s {
		if invalidOn(opts.Platform, c) {
			if !seen[c] {
				seen[c] = true
				replaced = append(replaced, c)
			}
			b.WriteRune(opts.Replacement)
		} else {
			b.WriteRune(c)
		}
	}
	if len(replaced) > 0 {
		quoted := make([]string, len(replaced))
		for i, c := range replaced {
			quoted[i] = fmt.Sprintf("%q", string(c))
		}
		res.Changes = append(res.Changes, Change{
			Type:        ChangeCharReplacement,
			Original:    string(replaced),
			Replacement: strings.Repeat(string(opts.Replacement), len(replaced)),
			Message:     "Replaced invalid characters: " + strings.Join(quoted, ", "),
		})
		s = b.String()
	}

	// 2. collapse runs of the replacement character
	double := string(opts.Replacement) + string(opts.Replacement)
	for strings.Contains(s, double) {
		s = strings.ReplaceAll(s, double, string(opts.Replacement))
	}

	// 3. reserved device names (Windows-compatible targets only)
	if windowsCompatible(opts.Platform) {
		namePart, extPart := SplitName(s)
		if reservedNames[strings.ToUpper(namePart)] {
			res.Changes = append(res.Changes, Change{
				Type:        ChangeReservedName,
				Original:    namePart,
				Replacement: namePart + "_file",
				Message:     fmt.Sprintf("%q is a reserved name on Windows", namePart),
			})
			s = namePart + "_file" + extPart
		}
	}

	// 4. strip trailing spaces/periods from the name portion
	namePart, extPart := SplitName(s)
	trimmed := strings.TrimRight(namePart, ". ")
	if trimmed != namePart {
		res.Changes = append(res.Changes, Change{
			Type:        ChangeTrailingFix,
			Original:    namePart[len(trimmed):],
			Replacement: "",
			Message:     "Removed trailing spaces/periods (invalid on Windows)",
		})
		s = trimmed + extPart
	}

	// 5. length budget
	if len(s) > opts.MaxLength {
		before := s
		s = truncate(s, opts.MaxLength, opts.Truncation)
		res.Changes = append(res.Changes, Change{
			Type:        ChangeTruncation,
			Original:    before,
			Replacement: s,
			Message:     fmt.Sprintf("Truncated from %d to %d characters", len(before), len(s)),
		})
	}

	res.Sanitized = s
	res.WasModified = s != name
	return res
}

// truncate shortens a filename to maxLen while preserving the extension.
func truncate(name string, maxLen int, style TruncationStyle) string {
	namePart, extPart := SplitName(name)
	maxName := maxLen - len(extPart)
	if maxName < 1 {
		// extension alone exceeds the budget; hard cut
		return name[:maxLen]
	}
	if style == TruncateEllipsis && maxName > len(ellipsis) {
		return namePart[:maxName-len(ellipsis)] + ellipsis + extPart
	}
	return namePart[:maxName] + extPart
}

// SplitName splits a filename into name and extension parts. Dotfiles such as
// ".gitignore" are treated as all-name.
func SplitName(filename string) (string, string) {
	if filename == "" {
		return "", ""
	}
	if strings.HasPrefix(filename, ".") && !strings.Contains(filename[1:], ".") {
		return filename, ""
	}
	idx := strings.LastIndex(filename, ".")
	if idx <= 0 {
		return filename, ""
	}
	return filename[:idx], filename[idx:]
}

// IsValid reports whether a filename is already valid cross-platform. It
// mirrors the checks Name applies with default options.
func IsValid(name string) bool {
	if name == "" || len(name) > 255 {
		return false
	}
	for _, c := range name {
		if invalidOn(PlatformAll, c) {
			return false
		}
	}
	base, _ := SplitName(name)
	// also reject names whose first dot-segment is reserved ("CON.tar.gz")
	first := strings.SplitN(strings.ToUpper(name), ".", 2)[0]
	if reservedNames[strings.ToUpper(base)] || reservedNames[first] {
		return false
	}
	if strings.HasSuffix(name, " ") || strings.HasSuffix(name, ".") {
		return false
	}
	return true
}
