package settings

import _ "embed"

//go:embed assets/settings.php.tmpl
var blockTemplate string
