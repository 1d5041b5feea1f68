// Package cache holds adapted Published service lookups in an in-process LRU
// backed by an optional shared Redis tier.
package cache

import (
	"fmt"

	"servicecatalog/pkg/domain"
)

const keyPrefix = "catalog:service:"

// Key identifies one adapted lookup result.
type Key struct {
	Root      domain.RootID
	Schema    domain.SchemaVersion
	AttachAll bool
	Proposed  bool
	Language  domain.Language
}

func (k Key) String() string {
	return fmt.Sprintf("%s%s:v%d:%t:%t:%s", keyPrefix, k.Root, int(k.Schema), k.AttachAll, k.Proposed, k.Language)
}
