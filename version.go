package oastypes

var (
	// version is set via ldflags at release time.
	// Builds from source report "dev".
	version = "dev"
)

// Version returns the module version, or "dev" when built from source. It is
// reported as the instrumentation version of generator spans and metrics.
func Version() string {
	return version
}
