package template

import (
	"regexp"
	"strings"
	"time"

	"github.com/tidyfile/tidy/models"
)

// DefaultDateFormat is the date layout token string used when a pattern does
// not specify its own.
const DefaultDateFormat = "YYYY-MM-DD"

// ApplyResult reports how a pattern application went. Missing lists the
// placeholders that required metadata which was not available; Fallbacks lists
// placeholders resolved from the file's modification time instead of content
// metadata.
type ApplyResult struct {
	Name      string
	Missing   []string
	Fallbacks []string
	Sources   []string
}

var datePlaceholder = regexp.MustCompile(`\{date:([^}]+)\}`)

// Apply substitutes placeholders in a filename pattern. Metadata-derived
// placeholders ({date}, {camera}, {title}, {author}) record a missing entry
// when no metadata can supply them; {date} and the {year}/{month}/{day}
// family still substitute the file's modification time so the caller gets a
// concrete candidate name.
func Apply(pattern string, file *models.FileInfo, meta *models.UnifiedMetadata, dateFormat string) ApplyResult {
	if meta == nil {
		meta = &models.UnifiedMetadata{}
	}
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}

	res := ApplyResult{}
	out := pattern

	addSource := func(s string) {
		for _, have := range res.Sources {
			if have == s {
				return
			}
		}
		res.Sources = append(res.Sources, s)
	}

	contentDate, haveContentDate := meta.DateTaken()
	dateOf := func(placeholder string, required bool) time.Time {
		if haveContentDate {
			addSource("metadata-date")
			return contentDate
		}
		if required {
			res.Missing = append(res.Missing, placeholder)
		} else {
			res.Fallbacks = append(res.Fallbacks, placeholder)
		}
		addSource("file-date")
		return file.ModifiedAt
	}

	if strings.Contains(out, "{name}") || strings.Contains(out, "{original}") {
		out = strings.ReplaceAll(out, "{name}", file.Name)
		out = strings.ReplaceAll(out, "{original}", file.Name)
		addSource("filename")
	}
	if strings.Contains(out, "{ext}") {
		out = strings.ReplaceAll(out, "{ext}", file.Extension)
	}
	if strings.Contains(out, "{date}") {
		out = strings.ReplaceAll(out, "{date}", FormatDate(dateOf("{date}", true), dateFormat))
	}
	for _, m := range datePlaceholder.FindAllStringSubmatch(out, -1) {
		out = strings.ReplaceAll(out, m[0], FormatDate(dateOf(m[0], true), m[1]))
	}
	if strings.Contains(out, "{year}") {
		out = strings.ReplaceAll(out, "{year}", dateOf("{year}", false).Format("2006"))
	}
	if strings.Contains(out, "{month}") {
		out = strings.ReplaceAll(out, "{month}", dateOf("{month}", false).Format("01"))
	}
	if strings.Contains(out, "{day}") {
		out = strings.ReplaceAll(out, "{day}", dateOf("{day}", false).Format("02"))
	}
	if strings.Contains(out, "{camera}") {
		camera, ok := meta.Camera()
		if !ok {
			res.Missing = append(res.Missing, "{camera}")
		} else {
			addSource("exif")
		}
		out = strings.ReplaceAll(out, "{camera}", camera)
	}
	if strings.Contains(out, "{title}") {
		title, ok := meta.Title()
		if !ok {
			res.Missing = append(res.Missing, "{title}")
		} else {
			addSource("document")
		}
		out = strings.ReplaceAll(out, "{title}", title)
	}
	if strings.Contains(out, "{author}") {
		author, ok := meta.Author()
		if !ok {
			res.Missing = append(res.Missing, "{author}")
		} else {
			addSource("document")
		}
		out = strings.ReplaceAll(out, "{author}", author)
	}
	if strings.Contains(out, "{category}") {
		out = strings.ReplaceAll(out, "{category}", string(file.Category))
	}

	out = ensureExtension(out, file.Extension)
	res.Name = out
	return res
}

// ensureExtension makes sure the produced name carries the file's extension,
// replacing a wrong one if the pattern hard-coded it.
func ensureExtension(name, ext string) string {
	if ext == "" {
		return name
	}
	if !strings.Contains(name, ".") {
		return name + "." + ext
	}
	if strings.HasSuffix(strings.ToLower(name), "."+strings.ToLower(ext)) {
		return name
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[:idx] + "." + ext
	}
	return name + "." + ext
}

// ApplyFolder substitutes placeholders in a directory pattern. Unlike filename
// application, a metadata placeholder with no value is an error: moving a file
// into a half-resolved directory would scatter the batch.
func ApplyFolder(pattern string, file *models.FileInfo, meta *models.UnifiedMetadata) (string, []string) {
	if meta == nil {
		meta = &models.UnifiedMetadata{}
	}
	out := pattern
	var missing []string

	date, haveDate := meta.DateTaken()
	if !haveDate {
		date = file.ModifiedAt
	}

	out = strings.ReplaceAll(out, "{year}", date.Format("2006"))
	out = strings.ReplaceAll(out, "{month}", date.Format("01"))
	out = strings.ReplaceAll(out, "{day}", date.Format("02"))
	out = strings.ReplaceAll(out, "{category}", folderCategory(file.Category))
	out = strings.ReplaceAll(out, "{extension}", file.Extension)
	out = strings.ReplaceAll(out, "{ext}", file.Extension)
	if strings.Contains(out, "{camera}") {
		camera, ok := meta.Camera()
		if !ok {
			missing = append(missing, "{camera}")
		}
		out = strings.ReplaceAll(out, "{camera}", camera)
	}
	if strings.Contains(out, "{author}") {
		author, ok := meta.Author()
		if !ok {
			missing = append(missing, "{author}")
		}
		out = strings.ReplaceAll(out, "{author}", author)
	}

	// normalize separators
	out = strings.ReplaceAll(out, "\\", "/")
	out = strings.Trim(out, "/")
	for strings.Contains(out, "//") {
		out = strings.ReplaceAll(out, "//", "/")
	}
	return out, missing
}

func folderCategory(c models.FileCategory) string {
	switch c {
	case models.CategoryImage:
		return "Images"
	case models.CategoryDocument:
		return "Documents"
	case models.CategoryVideo:
		return "Videos"
	case models.CategoryAudio:
		return "Audio"
	case models.CategoryArchive:
		return "Archives"
	case models.CategoryCode:
		return "Code"
	case models.CategoryData:
		return "Data"
	}
	return "Other"
}

// FormatDate renders a date using YYYY/MM/DD-style tokens.
func FormatDate(t time.Time, format string) string {
	layout := format
	layout = strings.ReplaceAll(layout, "YYYY", "2006")
	layout = strings.ReplaceAll(layout, "DD", "02")
	layout = strings.ReplaceAll(layout, "HH", "15")
	layout = strings.ReplaceAll(layout, "mm", "04")
	layout = strings.ReplaceAll(layout, "ss", "05")
	layout = strings.ReplaceAll(layout, "MM", "01")
	return t.Format(layout)
}
