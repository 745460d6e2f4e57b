package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnaFlavia-corretora/pcd/internal/domain"
)

func TestBuildRows_MarcaAsc_GroupBoundaries(t *testing.T) {
	items := []domain.Vehicle{
		{ID: "f1", Marca: "Fiat"},
		{ID: "c1", Marca: "Chevrolet"},
		{ID: "f2", Marca: "Fiat"},
		{ID: "c2", Marca: "Chevrolet"},
	}

	rows := BuildRows(items, domain.SortMarcaAsc)
	require.Len(t, rows, 4)

	// Sorted: Chevrolet c1, Chevrolet c2, Fiat f1, Fiat f2.
	assert.Equal(t, "c1", rows[0].Vehicle.ID)
	assert.True(t, rows[0].OpensGroup, "first row always opens a group")
	assert.False(t, rows[1].OpensGroup, "same brand as predecessor")
	assert.True(t, rows[2].OpensGroup, "brand changed")
	assert.False(t, rows[3].OpensGroup)

	for _, row := range rows {
		assert.Nil(t, row.Discount, "brand ordering carries no discount annotations")
	}
}

func TestBuildRows_MarcaAsc_SingleRowOpensGroup(t *testing.T) {
	rows := BuildRows([]domain.Vehicle{{ID: "only", Marca: "Fiat"}}, domain.SortMarcaAsc)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].OpensGroup)
}

func TestBuildRows_DescontoDesc_AnnotatesDiscounts(t *testing.T) {
	items := []domain.Vehicle{
		{ID: "small", PrecoPublico: "R$ 100,00", PrecoPCD: "R$ 90,00"},
		{ID: "big", PrecoPublico: "R$ 100,00", PrecoPCD: "R$ 75,00"},
	}

	rows := BuildRows(items, domain.SortDescontoDesc)
	require.Len(t, rows, 2)

	assert.Equal(t, "big", rows[0].Vehicle.ID)
	require.NotNil(t, rows[0].Discount)
	assert.Equal(t, 25.00, rows[0].Discount.Amount)
	assert.Equal(t, 25.00, rows[0].Discount.Percent)

	require.NotNil(t, rows[1].Discount)
	assert.Equal(t, 10.00, rows[1].Discount.Amount)

	for _, row := range rows {
		assert.False(t, row.OpensGroup, "discount ordering has no brand groups")
	}
}

func TestBuildRows_DefaultAndValorAsc_NoAnnotations(t *testing.T) {
	items := discountFixture()

	for _, mode := range []domain.SortMode{domain.SortDefault, domain.SortValorAsc} {
		rows := BuildRows(items, mode)
		require.Len(t, rows, len(items))
		for _, row := range rows {
			assert.False(t, row.OpensGroup)
			assert.Nil(t, row.Discount)
		}
	}
}

func TestBuildRows_NeverMutatesInput(t *testing.T) {
	items := discountFixture()
	original := idsOf(items)

	BuildRows(items, domain.SortMarcaAsc)
	BuildRows(items, domain.SortDescontoDesc)

	assert.Equal(t, original, idsOf(items))
}

func TestBuildRows_Empty(t *testing.T) {
	assert.Empty(t, BuildRows(nil, domain.SortMarcaAsc))
}
