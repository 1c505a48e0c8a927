package abundance

import (
	"bufio"
	"io"
	"strconv"
)

// WriteTSV emits the matrix with a header row ("taxon" followed by one
// column per sample in input argument order) and rows sorted
// lexicographically by name.
func (m *Matrix) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriterSize(w, 1<<16)

	if _, err := bw.WriteString("taxon"); err != nil {
		return err
	}
	for _, s := range m.samples {
		if _, err := bw.WriteString("\t" + s); err != nil {
			return err
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	for _, name := range m.sortedRowNames() {
		if _, err := bw.WriteString(name); err != nil {
			return err
		}
		r := m.rows[name]
		for _, s := range m.samples {
			v, ok := r.cells[s]
			if !ok {
				v = 0
			}
			if _, err := bw.WriteString("\t" + strconv.FormatFloat(v, 'f', 6, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
