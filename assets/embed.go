package assets

import "embed"

// AssetsFS holds the static files served under /assets/.
// css/output.css is built by `go run ./cmd/do gen`.
//
//go:embed js/checkout.js css/output.css
var AssetsFS embed.FS
