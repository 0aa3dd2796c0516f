package storefront

import "embed"

// ContentFS holds the catalog: content/products/*.md and content/plans/*.md.
//
//go:embed content
var ContentFS embed.FS
