package models

import "time"

// ImageMetadata holds EXIF-derived fields for image files.
type ImageMetadata struct {
	CameraMake  string     `json:"cameraMake,omitempty"`
	CameraModel string     `json:"cameraModel,omitempty"`
	DateTaken   *time.Time `json:"dateTaken,omitempty"`
	Width       int        `json:"width,omitempty"`
	Height      int        `json:"height,omitempty"`
	GPSLatitude float64    `json:"gpsLatitude,omitempty"`
	GPSLongitude float64   `json:"gpsLongitude,omitempty"`
}

// PDFMetadata holds document info fields for PDF files.
type PDFMetadata struct {
	Title     string     `json:"title,omitempty"`
	Author    string     `json:"author,omitempty"`
	Subject   string     `json:"subject,omitempty"`
	PageCount int        `json:"pageCount,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// OfficeMetadata holds properties for office documents.
type OfficeMetadata struct {
	Title     string     `json:"title,omitempty"`
	Author    string     `json:"author,omitempty"`
	Company   string     `json:"company,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// UnifiedMetadata is the optional per-file metadata bag supplied by the
// extractor collaborator. A zero value is valid and means "nothing extracted".
type UnifiedMetadata struct {
	Image  *ImageMetadata  `json:"image,omitempty"`
	PDF    *PDFMetadata    `json:"pdf,omitempty"`
	Office *OfficeMetadata `json:"office,omitempty"`
}

// Field resolves a dotted field path (e.g. "image.cameraMake") to its string
// value. The second return reports whether the field exists and is non-empty.
func (m *UnifiedMetadata) Field(path string) (string, bool) {
	if m == nil {
		return "", false
	}
	switch path {
	case "image.cameraMake":
		return nonEmpty(stringOrEmpty(m.Image, func(i *ImageMetadata) string { return i.CameraMake }))
	case "image.cameraModel":
		return nonEmpty(stringOrEmpty(m.Image, func(i *ImageMetadata) string { return i.CameraModel }))
	case "image.dateTaken":
		if m.Image != nil && m.Image.DateTaken != nil {
			return m.Image.DateTaken.Format("2006-01-02"), true
		}
		return "", false
	case "pdf.title":
		return nonEmpty(stringOrEmpty(m.PDF, func(p *PDFMetadata) string { return p.Title }))
	case "pdf.author":
		return nonEmpty(stringOrEmpty(m.PDF, func(p *PDFMetadata) string { return p.Author }))
	case "pdf.subject":
		return nonEmpty(stringOrEmpty(m.PDF, func(p *PDFMetadata) string { return p.Subject }))
	case "office.title":
		return nonEmpty(stringOrEmpty(m.Office, func(o *OfficeMetadata) string { return o.Title }))
	case "office.author":
		return nonEmpty(stringOrEmpty(m.Office, func(o *OfficeMetadata) string { return o.Author }))
	case "office.company":
		return nonEmpty(stringOrEmpty(m.Office, func(o *OfficeMetadata) string { return o.Company }))
	}
	return "", false
}

// Title returns the best available document title across sub-records.
func (m *UnifiedMetadata) Title() (string, bool) {
	if v, ok := m.Field("pdf.title"); ok {
		return v, true
	}
	return m.Field("office.title")
}

// Author returns the best available author across sub-records.
func (m *UnifiedMetadata) Author() (string, bool) {
	if v, ok := m.Field("pdf.author"); ok {
		return v, true
	}
	return m.Field("office.author")
}

// Camera returns a "Make Model" string when EXIF data is present.
func (m *UnifiedMetadata) Camera() (string, bool) {
	if m == nil || m.Image == nil {
		return "", false
	}
	make, model := m.Image.CameraMake, m.Image.CameraModel
	switch {
	case make != "" && model != "":
		return make + " " + model, true
	case model != "":
		return model, true
	case make != "":
		return make, true
	}
	return "", false
}

// DateTaken returns the content date (EXIF or document creation), if any.
func (m *UnifiedMetadata) DateTaken() (time.Time, bool) {
	if m == nil {
		return time.Time{}, false
	}
	if m.Image != nil && m.Image.DateTaken != nil {
		return *m.Image.DateTaken, true
	}
	if m.PDF != nil && m.PDF.CreatedAt != nil {
		return *m.PDF.CreatedAt, true
	}
	if m.Office != nil && m.Office.CreatedAt != nil {
		return *m.Office.CreatedAt, true
	}
	return time.Time{}, false
}

func stringOrEmpty[T any](v *T, get func(*T) string) string {
	if v == nil {
		return ""
	}
	return get(v)
}

func nonEmpty(s string) (string, bool) {
	return s, s != ""
}

// AnalysisResult is a confidence-scored naming suggestion from the LLM
// collaborator.
type AnalysisResult struct {
	SuggestedName string  `json:"suggestedName"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning,omitempty"`
	Model         string  `json:"model,omitempty"`
}
