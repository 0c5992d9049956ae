// Package schema provides embedded JSON schemas for the editor results file
// and the uetest configuration file.
package schema

import "embed"

// FS contains the embedded schema files.
//
//go:embed *.schema.json
var FS embed.FS
