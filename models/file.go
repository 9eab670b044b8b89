package models

import (
	"path/filepath"
	"strings"
	"time"
)

// FileCategory is a coarse classification derived from the file extension.
type FileCategory string

const (
	CategoryImage    FileCategory = "image"
	CategoryDocument FileCategory = "document"
	CategoryVideo    FileCategory = "video"
	CategoryAudio    FileCategory = "audio"
	CategoryArchive  FileCategory = "archive"
	CategoryCode     FileCategory = "code"
	CategoryData     FileCategory = "data"
	CategoryOther    FileCategory = "other"
)

var categoryByExtension = map[string]FileCategory{
	"jpg": CategoryImage, "jpeg": CategoryImage, "png": CategoryImage,
	"gif": CategoryImage, "heic": CategoryImage, "webp": CategoryImage,
	"tiff": CategoryImage, "bmp": CategoryImage, "raw": CategoryImage,

	"pdf": CategoryDocument, "doc": CategoryDocument, "docx": CategoryDocument,
	"xls": CategoryDocument, "xlsx": CategoryDocument, "ppt": CategoryDocument,
	"pptx": CategoryDocument, "odt": CategoryDocument, "txt": CategoryDocument,
	"md": CategoryDocument, "rtf": CategoryDocument,

	"mp4": CategoryVideo, "mov": CategoryVideo, "avi": CategoryVideo,
	"mkv": CategoryVideo, "webm": CategoryVideo,

	"mp3": CategoryAudio, "wav": CategoryAudio, "flac": CategoryAudio,
	"aac": CategoryAudio, "ogg": CategoryAudio, "m4a": CategoryAudio,

	"zip": CategoryArchive, "tar": CategoryArchive, "gz": CategoryArchive,
	"rar": CategoryArchive, "7z": CategoryArchive, "bz2": CategoryArchive,

	"go": CategoryCode, "rs": CategoryCode, "py": CategoryCode,
	"js": CategoryCode, "ts": CategoryCode, "c": CategoryCode,
	"h": CategoryCode, "java": CategoryCode, "sh": CategoryCode,

	"json": CategoryData, "yaml": CategoryData, "yml": CategoryData,
	"csv": CategoryData, "xml": CategoryData, "toml": CategoryData,
	"sql": CategoryData,
}

// extensions for which a metadata extractor is expected to produce results
var metadataExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "heic": true, "tiff": true,
	"pdf": true,
	"doc": true, "docx": true, "xls": true, "xlsx": true, "ppt": true, "pptx": true,
}

// CategoryForExtension classifies a bare extension (no leading dot).
func CategoryForExtension(ext string) FileCategory {
	if c, ok := categoryByExtension[strings.ToLower(ext)]; ok {
		return c
	}
	return CategoryOther
}

// MetadataSupported reports whether metadata extraction is expected for the extension.
func MetadataSupported(ext string) bool {
	return metadataExtensions[strings.ToLower(ext)]
}

// FileInfo describes a scanned file. It is produced by the scanner collaborator
// and treated as read-only by the rename pipeline.
type FileInfo struct {
	Path              string       `json:"path"`
	Name              string       `json:"name"`     // without extension
	Extension         string       `json:"extension"` // without leading dot
	FullName          string       `json:"fullName"`
	RelativePath      string       `json:"relativePath"`
	Size              int64        `json:"size"`
	CreatedAt         time.Time    `json:"createdAt"`
	ModifiedAt        time.Time    `json:"modifiedAt"`
	Category          FileCategory `json:"category"`
	MetadataSupported bool         `json:"metadataSupported"`
}

// Directory returns the directory containing the file.
func (f *FileInfo) Directory() string {
	return filepath.Dir(f.Path)
}
