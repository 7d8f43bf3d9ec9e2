// Package version reports what build of observafloresta is running
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Service is the name the api reports in meta and clickhouse client info
const Service = "floresta-api"

// Info returns the build information, stamped at link time:
//
//	-ldflags "-X observafloresta/internal/core/version.version=v0.1.0 -X observafloresta/internal/core/version.commit=abcd"
func Info() BuildInfo {
	return BuildInfo{
		Service: Service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
