package arrowdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/tsawler/plotpairs/model"
)

// ReadFile reads an Arrow IPC file into a frame named after the file. The
// record batches of the file are concatenated in order.
func ReadFile(filename string) (*model.Frame, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, fmt.Errorf("reading arrow file: %w", err)
	}
	defer r.Close()

	fields := r.Schema().Fields()
	cols := make([]model.Column, len(fields))
	for i, field := range fields {
		kind, ok := kindOf(field.Type)
		if !ok {
			return nil, fmt.Errorf("column %d (%s): unsupported arrow type %s", i, field.Name, field.Type)
		}
		cols[i] = model.Column{Name: field.Name, Kind: kind}
	}

	for i := 0; i < r.NumRecords(); i++ {
		// valid until the next call to Record
		rec, err := r.Record(i)
		if err != nil {
			return nil, fmt.Errorf("reading record batch %d: %w", i, err)
		}
		ds, err := New(rec)
		if err != nil {
			return nil, err
		}
		for c := range cols {
			for row := 0; row < ds.RowCount(); row++ {
				cols[c].Values = append(cols[c].Values, ds.Value(c, row))
			}
		}
		ds.Release()
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return model.NewFrame(name, cols...)
}
