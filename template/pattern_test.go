package template

import (
	"testing"
	"time"

	"github.com/tidyfile/tidy/models"
)

func metaWithDate(t time.Time) *models.UnifiedMetadata {
	return &models.UnifiedMetadata{Image: &models.ImageMetadata{DateTaken: &t}}
}

func TestApplyBasic(t *testing.T) {
	res := Apply("{name}.{ext}", testFile("photo", "jpg"), nil, "")
	if res.Name != "photo.jpg" {
		t.Errorf("got %s", res.Name)
	}
	if len(res.Missing) != 0 {
		t.Errorf("unexpected missing: %v", res.Missing)
	}
}

func TestApplyDateFromMetadata(t *testing.T) {
	taken := time.Date(2023, 12, 24, 8, 0, 0, 0, time.UTC)
	res := Apply("{date}_{name}", testFile("photo", "jpg"), metaWithDate(taken), "")
	if res.Name != "2023-12-24_photo.jpg" {
		t.Errorf("got %s", res.Name)
	}
	if len(res.Missing) != 0 || len(res.Fallbacks) != 0 {
		t.Errorf("metadata date must not be missing or fallback: %+v", res)
	}
}

func TestApplyDateWithoutMetadataIsMissing(t *testing.T) {
	res := Apply("{date}_{original}", testFile("vacation", "jpg"), nil, "")
	// name still falls back to the modification date
	if res.Name != "2024-07-15_vacation.jpg" {
		t.Errorf("got %s", res.Name)
	}
	if len(res.Missing) != 1 || res.Missing[0] != "{date}" {
		t.Errorf("expected {date} reported missing, got %v", res.Missing)
	}
}

func TestApplyYearMonthDayFallback(t *testing.T) {
	res := Apply("{year}/{month}/{name}", testFile("photo", "jpg"), nil, "")
	if res.Name != "2024/07/photo.jpg" {
		t.Errorf("got %s", res.Name)
	}
	if len(res.Missing) != 0 {
		t.Errorf("date family must not be required: %v", res.Missing)
	}
	if len(res.Fallbacks) != 2 {
		t.Errorf("expected two fallback placeholders, got %v", res.Fallbacks)
	}
}

func TestApplyCustomDateFormat(t *testing.T) {
	taken := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	res := Apply("{date:YYYYMMDD}_{name}", testFile("photo", "jpg"), metaWithDate(taken), "")
	if res.Name != "20240715_photo.jpg" {
		t.Errorf("got %s", res.Name)
	}
}

func TestApplyCameraMissing(t *testing.T) {
	res := Apply("{camera}-{name}", testFile("photo", "jpg"), nil, "")
	if len(res.Missing) != 1 || res.Missing[0] != "{camera}" {
		t.Errorf("expected {camera} missing, got %v", res.Missing)
	}
}

func TestApplyEnsuresExtension(t *testing.T) {
	res := Apply("output", testFile("photo", "jpg"), nil, "")
	if res.Name != "output.jpg" {
		t.Errorf("got %s", res.Name)
	}

	// wrong hard-coded extension is corrected
	res = Apply("output.png", testFile("photo", "jpg"), nil, "")
	if res.Name != "output.jpg" {
		t.Errorf("got %s", res.Name)
	}
}

func TestApplyFolder(t *testing.T) {
	taken := time.Date(2023, 3, 9, 0, 0, 0, 0, time.UTC)
	dir, missing := ApplyFolder("{year}/{month}", testFile("photo", "jpg"), metaWithDate(taken))
	if dir != "2023/03" || len(missing) != 0 {
		t.Errorf("got %q missing=%v", dir, missing)
	}
}

func TestApplyFolderCategoryAndCleanup(t *testing.T) {
	dir, _ := ApplyFolder("//{category}//{year}/", testFile("photo", "jpg"), nil)
	if dir != "Images/2024" {
		t.Errorf("got %q", dir)
	}
}

func TestApplyFolderMissingMetadata(t *testing.T) {
	_, missing := ApplyFolder("{camera}/{year}", testFile("photo", "jpg"), nil)
	if len(missing) != 1 || missing[0] != "{camera}" {
		t.Errorf("expected {camera} missing, got %v", missing)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 7, 15, 10, 30, 45, 0, time.UTC)
	tests := []struct{ format, want string }{
		{"YYYY-MM-DD", "2024-07-15"},
		{"YYYYMMDD", "20240715"},
		{"YYYY-MM-DD HH:mm:ss", "2024-07-15 10:30:45"},
	}
	for _, tt := range tests {
		if got := FormatDate(d, tt.format); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		in    string
		style CaseStyle
		want  string
	}{
		{"My Photo.JPG", CaseKebab, "my-photo.jpg"},
		{"my_photo.jpg", CaseSnake, "my_photo.jpg"},
		{"myPhotoFile.jpg", CaseTitle, "My Photo File.jpg"},
		{"My Photo.jpg", CaseCamel, "myPhoto.jpg"},
		{"my photo.jpg", CasePascal, "MyPhoto.jpg"},
		{"MIXED case.jpg", CaseLowercase, "mixed case.jpg"},
		{".gitignore", CaseNone, ".gitignore"},
		{".hidden file.TXT", CaseKebab, ".hidden-file.txt"},
		{"anything.jpg", CaseNone, "anything.jpg"},
	}
	for _, tt := range tests {
		if got := NormalizeFilename(tt.in, tt.style); got != tt.want {
			t.Errorf("NormalizeFilename(%q, %s) = %q, want %q", tt.in, tt.style, got, tt.want)
		}
	}
}
