// Package arrowdata exposes Apache Arrow records as datasets for the pairs
// package, reading values in place without copying columns.
//
// Arrow nulls (the validity bitmap) become the null cell value. Supported
// column types are the signed and unsigned integers, float32 and float64
// (numbers), utf8 and large utf8 (strings), boolean (the strings "true" and
// "false"), and timestamp, date32 and date64 (times).
package arrowdata

import (
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/tsawler/plotpairs/model"
)

// Dataset reads cells from an Arrow record.
type Dataset struct {
	rec   arrow.Record
	kinds []model.Kind
}

// New wraps rec. It fails if any column has an unsupported type. The
// record is retained until Release is called.
func New(rec arrow.Record) (*Dataset, error) {
	kinds := make([]model.Kind, rec.NumCols())
	for i, field := range rec.Schema().Fields() {
		kind, ok := kindOf(field.Type)
		if !ok {
			return nil, fmt.Errorf("column %d (%s): unsupported arrow type %s", i, field.Name, field.Type)
		}
		kinds[i] = kind
	}
	rec.Retain()
	return &Dataset{rec: rec, kinds: kinds}, nil
}

// Release releases the wrapped record.
func (d *Dataset) Release() {
	d.rec.Release()
}

// RowCount returns the number of rows in the record.
func (d *Dataset) RowCount() int {
	return int(d.rec.NumRows())
}

// ColumnCount returns the number of columns in the record.
func (d *Dataset) ColumnCount() int {
	return int(d.rec.NumCols())
}

// ColumnNames returns the field names in schema order.
func (d *Dataset) ColumnNames() []string {
	fields := d.rec.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// ColumnIndex returns the position of the first field with the given name.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	indices := d.rec.Schema().FieldIndices(name)
	if len(indices) == 0 {
		return -1, false
	}
	return indices[0], true
}

// Value returns the cell at (col, row). It panics if either index is out
// of range.
func (d *Dataset) Value(col, row int) model.Value {
	arr := d.rec.Column(col)
	if arr.IsNull(row) {
		return model.Null()
	}

	switch a := arr.(type) {
	case *array.Float64:
		return model.Number(a.Value(row))
	case *array.Float32:
		return model.Number(float64(a.Value(row)))
	case *array.Int64:
		return model.Number(float64(a.Value(row)))
	case *array.Int32:
		return model.Number(float64(a.Value(row)))
	case *array.Int16:
		return model.Number(float64(a.Value(row)))
	case *array.Int8:
		return model.Number(float64(a.Value(row)))
	case *array.Uint64:
		return model.Number(float64(a.Value(row)))
	case *array.Uint32:
		return model.Number(float64(a.Value(row)))
	case *array.Uint16:
		return model.Number(float64(a.Value(row)))
	case *array.Uint8:
		return model.Number(float64(a.Value(row)))
	case *array.String:
		return model.String(a.Value(row))
	case *array.LargeString:
		return model.String(a.Value(row))
	case *array.Boolean:
		return model.String(strconv.FormatBool(a.Value(row)))
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return model.Time(a.Value(row).ToTime(unit))
	case *array.Date32:
		return model.Time(a.Value(row).ToTime())
	case *array.Date64:
		return model.Time(a.Value(row).ToTime())
	default:
		// New rejects every other type
		panic(fmt.Sprintf("arrowdata: unexpected array %T", arr))
	}
}

// Frame copies the record into a model.Frame.
func (d *Dataset) Frame(name string) (*model.Frame, error) {
	cols := make([]model.Column, d.ColumnCount())
	names := d.ColumnNames()
	rows := d.RowCount()
	for c := range cols {
		values := make([]model.Value, rows)
		for r := 0; r < rows; r++ {
			values[r] = d.Value(c, r)
		}
		cols[c] = model.Column{Name: names[c], Kind: d.kinds[c], Values: values}
	}
	return model.NewFrame(name, cols...)
}

func kindOf(dt arrow.DataType) (model.Kind, bool) {
	switch dt.ID() {
	case arrow.FLOAT64, arrow.FLOAT32,
		arrow.INT64, arrow.INT32, arrow.INT16, arrow.INT8,
		arrow.UINT64, arrow.UINT32, arrow.UINT16, arrow.UINT8:
		return model.KindNumber, true
	case arrow.STRING, arrow.LARGE_STRING, arrow.BOOL:
		return model.KindString, true
	case arrow.TIMESTAMP, arrow.DATE32, arrow.DATE64:
		return model.KindTime, true
	default:
		return model.KindNull, false
	}
}
