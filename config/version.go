package config

// VersionString is the version of the deepcare server. Overridden at build
// time via -ldflags.
var VersionString = "dev"
