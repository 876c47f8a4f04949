// Package key provides the runner that prints the badge catalog legend.
package key

import (
	"context"
	"fmt"

	"tableflip.dev/habit/pkg/printers"
)

type Key struct{}

// Do prints the badge legend.
func (k *Key) Do(_ context.Context) error {
	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title("Badges")
	pp.BadgeKey()
	return nil
}
