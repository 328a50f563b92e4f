// Package schemas holds the JSON Schema documents shipped with the binary.
package schemas

import "embed"

// ProfileSchema is the file name of the profile document schema.
const ProfileSchema = "profile.schema.json"

//go:embed *.schema.json
var FS embed.FS
