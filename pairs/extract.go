// Package pairs turns two columns of a tabular dataset into the (x, y)
// pairs a plotting layer consumes.
//
// Rows whose x cell is null are always dropped. A null y cell is handled
// according to the NullValueMode: dropped (Ignore), replaced by zero
// (AsZero) or emitted as is (Passthrough, the default).
//
//	points, err := pairs.Extract(frame, pairs.Options{XIndex: 0, YIndex: 1, NullValueMode: pairs.AsZero})
package pairs

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tsawler/plotpairs/model"
)

// ErrIndexOutOfRange is matched by the error Extract returns when a column
// index does not exist in the dataset.
var ErrIndexOutOfRange = errors.New("column index out of range")

// Dataset is the read-only view Extract needs of a table.
// *model.Frame satisfies it.
type Dataset interface {
	RowCount() int
	ColumnCount() int
	Value(col, row int) model.Value
}

// Options selects the columns to pair and the null handling.
type Options struct {
	XIndex        int           `json:"xIndex"`
	YIndex        int           `json:"yIndex"`
	NullValueMode NullValueMode `json:"nullValueMode"`
}

// Pair is one plotted point.
type Pair struct {
	X model.Value
	Y model.Value
}

// MarshalJSON encodes the pair as a two-element array.
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]model.Value{p.X, p.Y})
}

// UnmarshalJSON decodes a two-element array.
func (p *Pair) UnmarshalJSON(data []byte) error {
	var v []model.Value
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("pair must have 2 elements, got %d", len(v))
	}
	p.X, p.Y = v[0], v[1]
	return nil
}

// String formats the pair as "(x, y)".
func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}

// IndexError reports a column index outside [0, columns).
type IndexError struct {
	Axis    string // "x" or "y"
	Index   int
	Columns int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range: dataset has %d columns", e.Axis, e.Index, e.Columns)
}

// Is makes errors.Is(err, ErrIndexOutOfRange) true.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// Extract reads the x and y columns row by row and returns the resulting
// pairs in row order. Both indices are checked before any row is read; no
// other error is possible. The returned slice is newly allocated and never
// longer than ds.RowCount().
func Extract(ds Dataset, opts Options) ([]Pair, error) {
	cols := ds.ColumnCount()
	if opts.XIndex < 0 || opts.XIndex >= cols {
		return nil, &IndexError{Axis: "x", Index: opts.XIndex, Columns: cols}
	}
	if opts.YIndex < 0 || opts.YIndex >= cols {
		return nil, &IndexError{Axis: "y", Index: opts.YIndex, Columns: cols}
	}

	rows := ds.RowCount()
	out := make([]Pair, 0)

	for i := 0; i < rows; i++ {
		x := ds.Value(opts.XIndex, i)
		y := ds.Value(opts.YIndex, i)

		if y.IsNull() {
			switch opts.NullValueMode {
			case Ignore:
				continue
			case AsZero:
				y = model.Number(0)
			}
		}

		// x must be a value whatever the mode
		if x.IsNull() {
			continue
		}

		out = append(out, Pair{X: x, Y: y})
	}

	return out, nil
}
