package composer

import _ "embed"

// extraSchema constrains the `extra.shepherd` section of composer.json.
//
//go:embed schema/extra.schema.json
var extraSchema []byte
