// Package cli turns the gridpath command line into a Config: the mode, the
// scenario to load, pacing and engine options, and the logger to use.
// Usage mistakes come back as *ExitError so main can pick the exit status.
package cli
