// Package ids generates sortable unique identifiers for purchase receipts.
package ids

import "github.com/segmentio/ksuid"

func New() string {
	return ksuid.New().String()
}
