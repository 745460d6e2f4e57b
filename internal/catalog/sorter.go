package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/AnaFlavia-corretora/pcd/internal/domain"
	"github.com/AnaFlavia-corretora/pcd/pkg/currency"
)

// Sort returns the catalog ordered for the given mode. The input slice is
// never reordered: every mode, including default, returns a newly allocated
// slice, so the original snapshot order stays retrievable.
//
// All orderings are stable; records with equal keys keep their relative
// snapshot order, which makes every mode deterministic.
func Sort(items []domain.Vehicle, mode domain.SortMode) []domain.Vehicle {
	out := make([]domain.Vehicle, len(items))
	copy(out, items)

	switch mode {
	case domain.SortValorAsc:
		sortByPrice(out)
	case domain.SortMarcaAsc:
		sortByBrand(out)
	case domain.SortDescontoDesc:
		sortByDiscount(out)
	default:
		// SortDefault or unrecognized: keep snapshot order.
	}

	return out
}

// sortByPrice orders ascending by the parsed primary price. Keys are parsed
// once per record and carried alongside it through the sort.
func sortByPrice(items []domain.Vehicle) {
	type keyed struct {
		price   float64
		vehicle domain.Vehicle
	}

	decorated := make([]keyed, len(items))
	for i, v := range items {
		decorated[i] = keyed{price: currency.ParseBRL(v.PrimaryPrice()), vehicle: v}
	}

	sort.SliceStable(decorated, func(i, j int) bool {
		return decorated[i].price < decorated[j].price
	})

	for i := range decorated {
		items[i] = decorated[i].vehicle
	}
}

// sortByBrand orders alphabetically by brand under Brazilian-Portuguese
// collation, so accented brand names sort in natural alphabetic position
// rather than by code point.
func sortByBrand(items []domain.Vehicle) {
	c := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(items[i].Marca, items[j].Marca) < 0
	})
}

// sortByDiscount orders descending by discount amount, largest saving first.
func sortByDiscount(items []domain.Vehicle) {
	type keyed struct {
		discount float64
		vehicle  domain.Vehicle
	}

	decorated := make([]keyed, len(items))
	for i, v := range items {
		decorated[i] = keyed{discount: domain.DiscountAmount(v), vehicle: v}
	}

	sort.SliceStable(decorated, func(i, j int) bool {
		return decorated[i].discount > decorated[j].discount
	})

	for i := range decorated {
		items[i] = decorated[i].vehicle
	}
}
