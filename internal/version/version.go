// Package version contains the expanalysis version.
package version

// Version is the expanalysis version.
const Version = "0.1.0"
