package sanitize

import (
	"strings"
	"testing"
)

func TestNameValidInputUnmodified(t *testing.T) {
	res := Name("valid_filename.jpg", Options{})
	if res.WasModified {
		t.Errorf("expected no modification, got changes: %v", res.Changes)
	}
	if res.Sanitized != "valid_filename.jpg" {
		t.Errorf("unexpected result: %s", res.Sanitized)
	}
}

func TestNameEmptyInput(t *testing.T) {
	res := Name("", Options{})
	if res.Sanitized != "" || res.WasModified || len(res.Changes) != 0 {
		t.Errorf("empty input must return itself unmodified: %+v", res)
	}
}

func TestNameReplacesInvalidChars(t *testing.T) {
	res := Name("photo:2024.jpg", Options{})
	if res.Sanitized != "photo_2024.jpg" {
		t.Errorf("got %s", res.Sanitized)
	}
	if len(res.Changes) != 1 || res.Changes[0].Type != ChangeCharReplacement {
		t.Errorf("expected one char_replacement change, got %v", res.Changes)
	}
}

func TestNameCollapsesReplacementRuns(t *testing.T) {
	res := Name("test::file.jpg", Options{})
	if res.Sanitized != "test_file.jpg" {
		t.Errorf("got %s", res.Sanitized)
	}
}

func TestNameReservedDeviceName(t *testing.T) {
	for _, name := range []string{"CON", "con", "LPT1", "aux"} {
		res := Name(name, Options{})
		if res.Sanitized != name+"_file" {
			t.Errorf("%s: got %s", name, res.Sanitized)
		}
		found := false
		for _, c := range res.Changes {
			if c.Type == ChangeReservedName {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: missing reserved_name change", name)
		}
	}
}

func TestNameReservedNameWithExtension(t *testing.T) {
	res := Name("CON.txt", Options{})
	if res.Sanitized != "CON_file.txt" {
		t.Errorf("got %s", res.Sanitized)
	}
}

func TestNameReservedNameSkippedOnLinuxTarget(t *testing.T) {
	res := Name("CON.txt", Options{Platform: PlatformLinux})
	if res.WasModified {
		t.Errorf("linux target must not rewrite reserved names: %s", res.Sanitized)
	}
}

func TestNameTrailingFix(t *testing.T) {
	res := Name("report...  .pdf", Options{})
	if res.Sanitized != "report.pdf" {
		t.Errorf("got %s", res.Sanitized)
	}
	found := false
	for _, c := range res.Changes {
		if c.Type == ChangeTrailingFix {
			found = true
		}
	}
	if !found {
		t.Errorf("missing trailing_fix change: %v", res.Changes)
	}
}

func TestNameTruncationPreservesExtension(t *testing.T) {
	long := strings.Repeat("a", 300) + ".jpg"
	res := Name(long, Options{})
	if len(res.Sanitized) != 255 {
		t.Errorf("expected 255 chars, got %d", len(res.Sanitized))
	}
	if !strings.HasSuffix(res.Sanitized, "....jpg") {
		t.Errorf("expected ellipsis before extension, got %q", res.Sanitized[240:])
	}
}

func TestNameHardTruncation(t *testing.T) {
	long := strings.Repeat("b", 100) + ".txt"
	res := Name(long, Options{MaxLength: 20, Truncation: TruncateNone})
	if len(res.Sanitized) != 20 {
		t.Errorf("expected 20 chars, got %d", len(res.Sanitized))
	}
	if strings.Contains(res.Sanitized, ellipsis) {
		t.Errorf("hard truncation must not add an ellipsis: %s", res.Sanitized)
	}
	if !strings.HasSuffix(res.Sanitized, ".txt") {
		t.Errorf("extension lost: %s", res.Sanitized)
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in, name, ext string
	}{
		{"photo.jpg", "photo", ".jpg"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"noext", "noext", ""},
		{".gitignore", ".gitignore", ""},
		{".hidden.txt", ".hidden", ".txt"},
		{"", "", ""},
	}
	for _, tt := range tests {
		name, ext := SplitName(tt.in)
		if name != tt.name || ext != tt.ext {
			t.Errorf("SplitName(%q) = (%q, %q), want (%q, %q)", tt.in, name, ext, tt.name, tt.ext)
		}
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"test.jpg", "my-photo_2024.png", "a"}
	for _, v := range valid {
		if !IsValid(v) {
			t.Errorf("expected %q to be valid", v)
		}
	}
	invalid := []string{"", "test/file.jpg", "test:file.jpg", "CON.txt", "test.", "test ", strings.Repeat("x", 256)}
	for _, v := range invalid {
		if IsValid(v) {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}
