// Package migrations embeds the schema of the inventory feed databases.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
