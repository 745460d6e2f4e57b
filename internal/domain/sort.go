package domain

// SortMode identifies one of the catalog's listing orders.
type SortMode string

// Sort modes offered by the listing's order selector.
const (
	SortDefault      SortMode = "default"
	SortValorAsc     SortMode = "valor_asc"
	SortMarcaAsc     SortMode = "marca_asc"
	SortDescontoDesc SortMode = "desconto_desc"
)

// ValidSortModes returns the set of recognized sort modes.
func ValidSortModes() []SortMode {
	return []SortMode{SortDefault, SortValorAsc, SortMarcaAsc, SortDescontoDesc}
}

// ParseSortMode maps a raw selector value to a SortMode. Unrecognized values
// fall back to SortDefault; the selector is lenient by contract, it never
// rejects.
func ParseSortMode(raw string) SortMode {
	switch SortMode(raw) {
	case SortValorAsc:
		return SortValorAsc
	case SortMarcaAsc:
		return SortMarcaAsc
	case SortDescontoDesc:
		return SortDescontoDesc
	default:
		return SortDefault
	}
}
