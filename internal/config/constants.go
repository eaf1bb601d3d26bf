package config

import "time"

// Application constants for the meter export conversion service.
const (
	// Application Info
	AppName    = "Meter Export Converter"
	AppVersion = "1.0.0"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per minute
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultConvertTimeout  = 2 * time.Minute
	DefaultShutdownTimeout = 30 * time.Second

	// File Paths (relative to executable)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultUploadsDir = "data/uploads"
	DefaultReportsDir = "data/reports"

	// Conversion Limits
	DefaultMaxUploadBytes = 50 * 1024 * 1024 // 50MB
	DefaultWorkers        = 4

	// Output Naming
	ConvertedFileSuffix = "_converted"
	UnitsFileSuffix     = "_units"
	ColumnsFileSuffix   = "_columns"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)
