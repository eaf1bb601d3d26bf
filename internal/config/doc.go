// Package config provides centralized configuration management for the
// conversion service. It handles loading configuration from multiple
// sources, validation, and path resolution.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration files (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern METERCONV_* for namespacing:
//
//	METERCONV_SERVER_PORT=8080
//	METERCONV_LOGGING_LEVEL=info
//	METERCONV_CONVERT_MAX_UPLOAD_BYTES=52428800
//	METERCONV_CONVERT_WORKERS=4
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which resolves all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	uploadPath := paths.GetUploadPath("march.csv")
package config
