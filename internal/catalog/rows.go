package catalog

import (
	"github.com/AnaFlavia-corretora/pcd/internal/domain"
)

// Row pairs a catalog record with the annotations the listing renderer
// consumes. Annotations are derived per request; nothing here is written
// back to the snapshot.
type Row struct {
	Vehicle domain.Vehicle

	// OpensGroup marks the first row of a brand group. Set only under
	// brand ordering: the first row always opens a group, and every row
	// whose brand differs from its predecessor opens the next one.
	OpensGroup bool

	// Discount carries the record's discount metrics. Set only under
	// discount ordering, computed at build time.
	Discount *domain.Discount
}

// BuildRows sorts the catalog for the given mode and annotates each row
// with the group boundaries and discount figures that ordering calls for.
func BuildRows(items []domain.Vehicle, mode domain.SortMode) []Row {
	sorted := Sort(items, mode)
	rows := make([]Row, len(sorted))

	for i, v := range sorted {
		row := Row{Vehicle: v}

		if mode == domain.SortMarcaAsc {
			row.OpensGroup = i == 0 || sorted[i-1].Marca != v.Marca
		}

		if mode == domain.SortDescontoDesc {
			d := domain.CalculateDiscount(v)
			row.Discount = &d
		}

		rows[i] = row
	}

	return rows
}
