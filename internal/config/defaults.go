package config

import "time"

const (
	// DefaultBaseURL is the address of the frontend dev server
	DefaultBaseURL = "http://localhost:5173"
	// DefaultTimeout is the per-request timeout for every check
	DefaultTimeout = 5 * time.Second
	// DefaultAssetPath is the static asset requested by the asset check
	DefaultAssetPath = "/vite.svg"
	// DefaultOutputJSONFile is the default report file name
	DefaultOutputJSONFile = "smoke-results.json"
	// DefaultOutputJSONDir is the default report directory
	DefaultOutputJSONDir = "storage"
	// DefaultHistoryLimit is how many runs the history command shows
	DefaultHistoryLimit = 10
	// DefaultLogLevel keeps stderr quiet unless something goes wrong
	DefaultLogLevel = "warn"
	// DefaultLogFormat is the slog handler used for diagnostics
	DefaultLogFormat = "text"
	// EnvPrefix prefixes every environment variable read by viper
	EnvPrefix = "HBSMOKE"
	// ConfigFileName is the config file searched for in the working directory
	ConfigFileName = ".hbsmoke"
)

// Markers expected in the HTML served at the base URL.
const (
	DefaultAppMarker    = "HandballStats"
	DefaultRootMarker   = `<div id="root">`
	DefaultBrandMarker  = "HandballStats Pro"
	DefaultScriptMarker = "main.jsx"
)

// DefaultReadyAreas are the feature areas announced once the frontend is reachable
var DefaultReadyAreas = []string{
	"Match Data Form",
	"Action Registration",
	"Validation System",
}
