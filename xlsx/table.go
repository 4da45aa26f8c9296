package xlsx

import "github.com/tsawler/plotpairs/model"

// Table converts a sheet to a text table. The sheet grid already spans
// exactly its non-blank cells. Cells covered by a merged region are empty,
// and error cells such as #N/A are emptied so they read as missing. The
// first row is marked as a header candidate.
func (r *Reader) Table(sheet *Sheet) *model.Table {
	if sheet.RowCount() == 0 {
		return &model.Table{Name: sheet.Name}
	}

	table := model.NewTable(sheet.RowCount(), sheet.ColCount())
	table.Name = sheet.Name

	for i, row := range sheet.Rows {
		for j := range row {
			cell := &row[j]
			mc := model.Cell{RowSpan: 1, ColSpan: 1, IsHeader: i == 0}
			if g, ok := cell.Merge(); ok && !cell.Covered() {
				mc.RowSpan, mc.ColSpan = g.Rows(), g.Cols()
			}
			if !cell.Covered() && cell.Type != Error {
				mc.Text = cell.Value
			}
			table.Rows[i][j] = mc
		}
	}

	return table
}
