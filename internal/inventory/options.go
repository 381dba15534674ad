package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Selection is the partially filled variant picker of the sales form.
type Selection struct {
	Type  string `json:"type"`
	Color string `json:"color"`
	Size  string `json:"size"`
}

// Options lists what the picker may offer next for a selection. Colors
// depend on Type, Sizes on Type+Color; MaxQuantity and UnitPrice are set
// only once the full triple names an existing row.
type Options struct {
	Types       []string         `json:"types"`
	Colors      []string         `json:"colors"`
	Sizes       []string         `json:"sizes"`
	Selection   Selection        `json:"selection"`
	MaxQuantity int              `json:"max_quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
}

// DeriveOptions recomputes the picker state from scratch. A selected value
// that is not offered at its level clears it and every level after it.
// For duplicate rows the one with the most stock is reported, matching the
// row a sale would draw from.
func DeriveOptions(items []ItemDTO, sel Selection) Options {
	out := Options{
		Types:  []string{},
		Colors: []string{},
		Sizes:  []string{},
	}

	out.Types = distinct(items, func(it ItemDTO) (string, bool) { return it.Type, true })
	if !contains(out.Types, sel.Type) {
		return out
	}
	out.Selection.Type = sel.Type

	out.Colors = distinct(items, func(it ItemDTO) (string, bool) {
		return it.Color, it.Type == sel.Type
	})
	if !contains(out.Colors, sel.Color) {
		return out
	}
	out.Selection.Color = sel.Color

	out.Sizes = distinct(items, func(it ItemDTO) (string, bool) {
		return it.Size, it.Type == sel.Type && it.Color == sel.Color
	})
	if !contains(out.Sizes, sel.Size) {
		return out
	}
	out.Selection.Size = sel.Size

	var best *ItemDTO
	for i := range items {
		it := &items[i]
		if it.Type != sel.Type || it.Color != sel.Color || it.Size != sel.Size {
			continue
		}
		if best == nil || it.Quantity > best.Quantity {
			best = it
		}
	}
	if best != nil {
		price := best.Price
		out.MaxQuantity = best.Quantity
		out.UnitPrice = &price
	}
	return out
}

func distinct(items []ItemDTO, pick func(ItemDTO) (string, bool)) []string {
	seen := map[string]struct{}{}
	values := []string{}
	for _, it := range items {
		v, ok := pick(it)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func contains(values []string, v string) bool {
	if v == "" {
		return false
	}
	i := sort.SearchStrings(values, v)
	return i < len(values) && values[i] == v
}
