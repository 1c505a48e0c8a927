package abundance

import (
	"encoding/json"
	"io"
	"strconv"
)

// BIOM 1.0 table rendering: a dense-matrix JSON shape drawn from Matrix's
// already-aggregated rows and samples.
const (
	biomFormat    = "Biological Observation Matrix 1.0.0"
	biomFormatURL = "http://biom-format.org/documentation/format_versions/biom-1.0.html"
	biomTableType = "OTU table"
)

type biomRowMeta struct {
	Taxid string `json:"taxid"`
	Rank  string `json:"rank"`
	Depth string `json:"depth"`
}

type biomRow struct {
	ID       string      `json:"id"`
	Metadata biomRowMeta `json:"metadata"`
}

type biomColumn struct {
	ID       string      `json:"id"`
	Metadata struct{}    `json:"metadata"`
}

type biomTable struct {
	ID                string       `json:"id"`
	Format            string       `json:"format"`
	FormatURL         string       `json:"format_url"`
	Type              string       `json:"type"`
	GeneratedBy       string       `json:"generated_by"`
	Date              string       `json:"date"`
	MatrixType        string       `json:"matrix_type"`
	MatrixElementType string       `json:"matrix_element_type"`
	Shape             [2]int       `json:"shape"`
	Data              [][]float64  `json:"data"`
	Rows              []biomRow    `json:"rows"`
	Columns           []biomColumn `json:"columns"`
}

// WriteBIOM renders the matrix as a BIOM 1.0 dense table. generatedAt is
// threaded in by the caller (stamped once at process start) rather than
// read from the clock here, keeping this function deterministic.
func (m *Matrix) WriteBIOM(w io.Writer, id, generatedAt string) error {
	names := m.sortedRowNames()

	t := biomTable{
		ID:                id,
		Format:            biomFormat,
		FormatURL:         biomFormatURL,
		Type:              biomTableType,
		GeneratedBy:       "krakenkit",
		Date:              generatedAt,
		MatrixType:        "dense",
		MatrixElementType: "float",
		Shape:             [2]int{len(names), len(m.samples)},
		Data:              make([][]float64, len(names)),
		Rows:              make([]biomRow, len(names)),
		Columns:           make([]biomColumn, len(m.samples)),
	}

	for i, name := range names {
		r := m.rows[name]
		cells := make([]float64, len(m.samples))
		for j, s := range m.samples {
			cells[j] = r.cells[s]
		}
		t.Data[i] = cells
		t.Rows[i] = biomRow{
			ID: name,
			Metadata: biomRowMeta{
				Taxid: strconv.FormatUint(uint64(r.taxid), 10),
				Rank:  r.rank,
				Depth: strconv.Itoa(r.depth),
			},
		}
	}
	for j, s := range m.samples {
		t.Columns[j] = biomColumn{ID: s}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

