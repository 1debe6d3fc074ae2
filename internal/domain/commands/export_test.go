package commands

// Truncate exports truncate for testing.
var Truncate = truncate //nolint:gochecknoglobals // test export
