package abundance

import (
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// WriteArrow renders the matrix in the Arrow IPC file format: one "taxon"
// string column and one float64 column per sample, for downstream columnar
// consumers (pandas/R/Arrow-aware tooling) that a TSV dump forces to
// re-parse.
func (m *Matrix) WriteArrow(w io.Writer) error {
	names := m.sortedRowNames()

	fields := make([]arrow.Field, 0, len(m.samples)+1)
	fields = append(fields, arrow.Field{Name: "taxon", Type: arrow.BinaryTypes.String})
	for _, s := range m.samples {
		fields = append(fields, arrow.Field{Name: s, Type: arrow.PrimitiveTypes.Float64})
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	taxonBuilder := builder.Field(0).(*array.StringBuilder)
	for _, name := range names {
		taxonBuilder.Append(name)
	}
	for j, s := range m.samples {
		col := builder.Field(j + 1).(*array.Float64Builder)
		for _, name := range names {
			col.Append(m.rows[name].cells[s])
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()

	writer, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		return err
	}
	if err := writer.Write(rec); err != nil {
		return err
	}
	return writer.Close()
}
