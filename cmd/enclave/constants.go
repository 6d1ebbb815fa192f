package main

// Valid export formats.
var validFormats = []string{"block", "json", "csv", "markdown"}
