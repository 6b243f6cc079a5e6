// Package config loads runtime configuration for the jobport CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-u string   base URL the resume upload paths are resolved against
//	-d string   path to the local session database file
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "upload_base_url": "http://localhost:8000",
//	  "session_db_path": "jobport.db",
//	  "request_timeout": "15s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
