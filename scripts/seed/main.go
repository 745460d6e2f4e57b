// Package main implements a standalone generator that writes a catalog
// snapshot file with realistic PCD vehicle data. The output is the JSON
// array the catalog service fetches at startup, so the generated file can
// be served by any static host (or read directly with CATALOG_SOURCE=file)
// for local development and load testing.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Snapshot record
// --------------------------------------------------------------------------

// vehicle mirrors the snapshot wire format consumed by the catalog service.
type vehicle struct {
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
}

// --------------------------------------------------------------------------
// Curated data pools
// --------------------------------------------------------------------------

type model struct {
	nome      string
	categoria string
	basePrice float64
}

var catalogo = map[string][]model{
	"Fiat": {
		{"Mobi Like", "Hatch", 68990},
		{"Argo Drive 1.0", "Hatch", 84990},
		{"Cronos Drive 1.3", "Sedã", 96990},
		{"Pulse Drive 1.3", "SUV", 104990},
		{"Toro Endurance", "Picape", 144990},
	},
	"Chevrolet": {
		{"Onix LT 1.0", "Hatch", 86990},
		{"Onix Plus LT", "Sedã", 94990},
		{"Tracker LT 1.0 Turbo", "SUV", 119990},
		{"Spin LT 1.8", "Minivan", 109990},
	},
	"Volkswagen": {
		{"Polo Track", "Hatch", 84990},
		{"Virtus MPI", "Sedã", 99990},
		{"T-Cross Sense", "SUV", 119990},
		{"Nivus Comfortline", "SUV", 129990},
	},
	"Hyundai": {
		{"HB20 Sense Plus", "Hatch", 82990},
		{"HB20S Comfort", "Sedã", 92990},
		{"Creta Comfort", "SUV", 129990},
	},
	"Toyota": {
		{"Yaris XL 1.5", "Hatch", 99990},
		{"Corolla XEi", "Sedã", 149990},
		{"Corolla Cross XR", "SUV", 159990},
	},
	"Renault": {
		{"Kwid Zen", "Hatch", 64990},
		{"Stepway Zen", "Hatch", 84990},
		{"Duster Intense", "SUV", 114990},
	},
	"Honda": {
		{"City EX", "Sedã", 119990},
		{"HR-V EX", "SUV", 139990},
	},
	"Nissan": {
		{"Versa Sense", "Sedã", 99990},
		{"Kicks Sense", "SUV", 114990},
	},
	"Jeep": {
		{"Renegade Sport T270", "SUV", 124990},
		{"Compass Sport T270", "SUV", 154990},
	},
}

var cidades = []string{
	"São Paulo",
	"Campinas",
	"Santos",
	"Sorocaba",
	"Ribeirão Preto",
	"São José dos Campos",
}

var equipamentos = []string{
	"Câmbio automático CVT.",
	"Câmbio automático de 6 marchas.",
	"Central multimídia com Android Auto e Apple CarPlay.",
	"Ar-condicionado digital e direção elétrica.",
	"Controle de estabilidade e assistente de partida em rampa.",
	"Sensor de estacionamento e câmera de ré.",
	"Seis airbags de série.",
}

var condicoes = []string{
	"Isenção total de IPI para pessoas com deficiência.",
	"Isenção de IPI e ICMS conforme legislação vigente.",
	"Documentação de isenção acompanhada por nossa equipe, sem custo.",
	"Entrega em todo o estado de São Paulo.",
}

// --------------------------------------------------------------------------
// Generation
// --------------------------------------------------------------------------

// formatBRL renders a value as Brazilian-locale currency text, matching how
// catalog snapshots are authored.
func formatBRL(v float64) string {
	cents := int64(v*100 + 0.5)
	reais := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	b.WriteString("R$ ")
	rem := len(reais) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(reais[:rem])
	for i := rem; i < len(reais); i += 3 {
		b.WriteByte('.')
		b.WriteString(reais[i : i+3])
	}
	fmt.Fprintf(&b, ",%02d", cents%100)
	return b.String()
}

func slugify(s string) string {
	replacer := strings.NewReplacer(
		" ", "-", ".", "", "ã", "a", "á", "a", "â", "a", "é", "e", "ê", "e",
		"í", "i", "ó", "o", "ô", "o", "õ", "o", "ú", "u", "ç", "c",
	)
	return replacer.Replace(strings.ToLower(s))
}

func generate(rng *rand.Rand, count int) []vehicle {
	type entry struct {
		marca string
		model model
	}
	var pool []entry
	for marca, models := range catalogo {
		for _, m := range models {
			pool = append(pool, entry{marca, m})
		}
	}
	// Map iteration order varies between runs; order the pool first so the
	// seeded RNG alone decides the output.
	for i := 1; i < len(pool); i++ {
		for j := i; j > 0 && (pool[j-1].marca > pool[j].marca ||
			(pool[j-1].marca == pool[j].marca && pool[j-1].model.nome > pool[j].model.nome)); j-- {
			pool[j-1], pool[j] = pool[j], pool[j-1]
		}
	}

	items := make([]vehicle, 0, count)
	for i := 0; i < count; i++ {
		e := pool[rng.Intn(len(pool))]

		// Dealer margin jitter of up to 6% over the base price.
		publico := e.model.basePrice * (1 + rng.Float64()*0.06)

		v := vehicle{
			ID:        strconv.Itoa(i + 1),
			Marca:     e.marca,
			Modelo:    e.model.nome,
			Categoria: e.model.categoria,
			Cidade:    cidades[rng.Intn(len(cidades))],
			Descricao: []string{
				equipamentos[rng.Intn(len(equipamentos))],
				condicoes[rng.Intn(len(condicoes))],
			},
		}

		slug := slugify(e.marca + "-" + e.model.nome)
		for j := 1; j <= 1+rng.Intn(3); j++ {
			v.Imagens = append(v.Imagens,
				fmt.Sprintf("https://images.anaflavia.com.br/veiculos/%s-%d.jpg", slug, j))
		}

		// Most records advertise the public/PCD pair; a few list a single
		// negotiated price, as the real snapshots do.
		if rng.Float64() < 0.85 {
			desconto := 0.08 + rng.Float64()*0.22
			v.PrecoPublico = formatBRL(publico)
			v.PrecoPCD = formatBRL(publico * (1 - desconto))
		} else {
			v.Valor = formatBRL(publico)
		}

		items = append(items, v)
	}

	return items
}

// --------------------------------------------------------------------------
// Entry point
// --------------------------------------------------------------------------

func main() {
	var (
		out   = flag.String("out", "carros.json", "output snapshot file")
		count = flag.Int("n", 24, "number of vehicles to generate")
		seed  = flag.Int64("seed", 42, "RNG seed; fixed by default for reproducible snapshots")
	)
	flag.Parse()

	if *count <= 0 {
		log.Fatalf("invalid -n %d: must be positive", *count)
	}

	rng := rand.New(rand.NewSource(*seed))
	items := generate(rng, *count)

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		log.Fatalf("marshal snapshot: %v", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}

	log.Printf("wrote %d vehicles to %s (seed %d)", len(items), *out, *seed)
}
