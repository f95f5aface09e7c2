// Package version holds the build-time version string, in the style of the
// teacher's shared/version package.
package version

// Version is set at release time; "0.0.0" marks a development build.
var Version = "0.0.0"
