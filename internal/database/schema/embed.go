package schema

import _ "embed"

// Surreal holds the SurrealQL definitions applied by `regdesk schema apply`.
//
//go:embed schema.surql
var Surreal string
