package data

import _ "embed"

// Menu is the bundled seed catalog
//
//go:embed menu.yaml
var Menu []byte
