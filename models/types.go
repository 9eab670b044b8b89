package models

import (
	"sync"
	"time"
)

// ProgressStats tracks scan progress across goroutines.
type ProgressStats struct {
	ProcessedFiles int64
	ProcessedBytes int64
	StartTime      time.Time
	LastLogTime    time.Time
	Mutex          sync.Mutex
}
