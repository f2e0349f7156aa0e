package config

import "testmark/internal/markers"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultResultsFile is the default results document name
	DefaultResultsFile = "test-results.json"
	// DefaultResultsDir is the default directory holding the results document
	DefaultResultsDir = "storage"
	// DefaultConfigFile is looked up in the project root when --config is not given
	DefaultConfigFile = "testmark.yaml"
	// DefaultSource tags every marker
	DefaultSource = markers.DefaultSource
	// DefaultFileErrorMessage is shown for a failing file without assertions or message
	DefaultFileErrorMessage = markers.FileErrorMessage
	// DefaultUnknownErrorMessage is shown for a failing assertion without a message
	DefaultUnknownErrorMessage = markers.UnknownErrorMessage
	// DefaultLogFormat is the log handler used when none is configured
	DefaultLogFormat = "text"
)

// Environment variables read after .env is loaded.
const (
	EnvResults   = "TESTMARK_RESULTS"
	EnvSource    = "TESTMARK_SOURCE"
	EnvLogFormat = "TESTMARK_LOG_FORMAT"
)

// DefaultTestSuffixes are the file name suffixes that identify test files
var DefaultTestSuffixes = []string{
	"Test.php",
	".test.ts",
	".test.tsx",
	".test.js",
	".spec.ts",
	".spec.js",
	"_test.go",
}

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"public",
	"storage",
	"dist",
	"build",
	"coverage",
}
