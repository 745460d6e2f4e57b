package domain

// Vehicle represents one record of the catalog snapshot. The wire format is
// the snapshot file's Brazilian-Portuguese JSON, kept as-is so the same data
// files serve every catalog variant.
//
// Price fields are locale-formatted currency strings, not numbers: a record
// carries either a single Valor, or the PrecoPublico/PrecoPCD pair for
// catalogs that advertise the PCD discount. Absent or malformed prices parse
// to zero downstream, never to an error.
type Vehicle struct {
	ID           string   `json:"id"`
	Marca        string   `json:"marca"`
	Modelo       string   `json:"modelo"`
	Categoria    string   `json:"categoria"`
	Cidade       string   `json:"cidade"`
	Imagens      []string `json:"imagens,omitempty"`
	Descricao    []string `json:"descricao,omitempty"`
	Valor        string   `json:"valor,omitempty"`
	PrecoPublico string   `json:"preco_publico,omitempty"`
	PrecoPCD     string   `json:"preco_pcd,omitempty"`

	// Optional listing facts; absent on most vehicle records, present on
	// property-style snapshots.
	Area    *int `json:"area,omitempty"`
	Quartos *int `json:"quartos,omitempty"`
	Vagas   *int `json:"vagas,omitempty"`
	Suites  *int `json:"suites,omitempty"`
}

// PrimaryPrice returns the price string that orders the record in ascending
// price listings: Valor for single-price catalogs, otherwise the PCD price.
func (v Vehicle) PrimaryPrice() string {
	if v.Valor != "" {
		return v.Valor
	}
	return v.PrecoPCD
}

// HasDiscountPrices reports whether the record carries the public/PCD price
// pair needed to derive discount metrics.
func (v Vehicle) HasDiscountPrices() bool {
	return v.PrecoPublico != "" && v.PrecoPCD != ""
}
