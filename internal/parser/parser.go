// Package parser turns one line of free-text order notes into a draft.
//
// The format is a heuristic, not a grammar: whitespace-separated tokens read
// positionally as "item price buyer qty". No quoting, no escaping, so
// multi-word item names are not supported; tokens past the fourth are dropped.
package parser

import (
	"strings"

	"github.com/jack-T524/oms/internal/domain"
)

// ParseQuickLine splits text on whitespace. With at least 4 tokens the first
// four become (item, price, name, qty) as raw strings; the parser itself never
// rejects bad numbers, that is left to whoever consumes the draft. With fewer
// tokens it returns an empty draft with qty defaulted to "1".
func ParseQuickLine(text string) domain.Draft {
	parts := strings.Fields(text)
	if len(parts) >= 4 {
		return domain.Draft{
			Item:  parts[0],
			Price: parts[1],
			Name:  parts[2],
			Qty:   parts[3],
		}
	}

	return domain.Draft{Qty: "1"}
}
