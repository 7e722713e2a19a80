// Package dataset produces the record sequences the benchmark runs on: CSV
// exports of real-estate transactions, synthetic listings, and a small
// fixture for stability checks.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"sortbench/pkg/common"
)

var ErrNoHeader = errors.New("dataset: missing header row")

// Load reads at most limit records from the CSV file at path.
func Load(path string, limit int) (common.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, limit)
}

// Read parses CSV from r. The first row names the fields. Rows whose field
// count differs from the header are skipped, and every value is kept as
// text so the key accessor decides how it parses. limit <= 0 reads all rows.
func Read(r io.Reader, limit int) (common.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var ds common.Dataset
	for limit <= 0 || len(ds) < limit {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue // malformed quoting, drop the row like a short one
			}
			return ds, err
		}
		if len(row) != len(header) {
			continue
		}
		rec := common.NewRecord()
		for i, name := range header {
			rec.Set(name, common.Text(strings.TrimSpace(row[i])))
		}
		ds = append(ds, rec)
	}
	return ds, nil
}

var (
	kinds    = []string{"Appartement", "Maison"}
	communes = []string{"PARIS", "LYON", "MARSEILLE", "BORDEAUX", "NANTES", "LILLE", "TOULOUSE", "NICE"}
)

// Generate returns n synthetic listings with the same fields as the CSV
// export. The same seed always yields the same records.
func Generate(n int, seed uint64) common.Dataset {
	rng := rand.New(rand.NewPCG(seed, seed^0x5DEECE66D))
	ds := make(common.Dataset, 0, max(n, 0))
	for i := 0; i < n; i++ {
		surface := 15 + rng.IntN(286)
		prix := 80000 + rng.IntN(1420001)
		prixM2 := math.Round(float64(prix)/float64(surface)*100) / 100
		prixM2 = min(max(prixM2, 1500), 20000)

		rec := common.NewRecord().
			Set("id", common.Text(strconv.Itoa(i+1))).
			Set("prix", common.Number(float64(prix))).
			Set("surface", common.Number(float64(surface))).
			Set("type_local", common.Text(kinds[rng.IntN(len(kinds))])).
			Set("commune", common.Text(communes[rng.IntN(len(communes))])).
			Set("nb_pieces", common.Number(float64(1+rng.IntN(10)))).
			Set("prix_m2", common.Number(prixM2))
		ds = append(ds, rec)
	}
	return ds
}

// Stability returns five records where ids 1..3 share prix 100000 and ids
// 4..5 share prix 200000. A stable sort on prix keeps the type order A..E.
func Stability() common.Dataset {
	rows := []struct {
		prix string
		id   int
		typ  string
	}{
		{"100000", 1, "A"},
		{"100000", 2, "B"},
		{"100000", 3, "C"},
		{"200000", 4, "D"},
		{"200000", 5, "E"},
	}
	ds := make(common.Dataset, len(rows))
	for i, r := range rows {
		ds[i] = common.NewRecord().
			Set("prix", common.Text(r.prix)).
			Set("id", common.Number(float64(r.id))).
			Set("type", common.Text(r.typ))
	}
	return ds
}
