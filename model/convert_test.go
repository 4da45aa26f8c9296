package model

import (
	"testing"
	"time"
)

func TestFrameFromTable_Inference(t *testing.T) {
	table := NewTableFromStrings([][]string{
		{"time", "value", "label", "empty"},
		{"2024-01-01", "1.5", "a", ""},
		{"2024-01-02", "NA", "b", "null"},
		{"2024-01-03T10:00:00Z", " 3 ", "", ""},
	})

	f, err := FrameFromTable(table, FrameOptions{HeaderRow: true})
	if err != nil {
		t.Fatalf("FrameFromTable error: %v", err)
	}

	if f.RowCount() != 3 {
		t.Fatalf("RowCount() = %d, want 3", f.RowCount())
	}
	names := f.ColumnNames()
	want := []string{"time", "value", "label", "empty"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("column %d name = %q, want %q", i, names[i], want[i])
		}
	}

	kinds := []Kind{KindTime, KindNumber, KindString, KindNull}
	for i, k := range kinds {
		col, _ := f.Column(i)
		if col.Kind != k {
			t.Errorf("column %q kind = %v, want %v", col.Name, col.Kind, k)
		}
	}

	if got, ok := f.Value(0, 2).Time(); !ok || !got.Equal(time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Value(0,2) = %v", f.Value(0, 2))
	}
	if !f.Value(1, 0).Equal(Number(1.5)) {
		t.Errorf("Value(1,0) = %v, want 1.5", f.Value(1, 0))
	}
	if !f.Value(1, 1).IsNull() {
		t.Error("NA should become null")
	}
	if !f.Value(1, 2).Equal(Number(3)) {
		t.Errorf("Value(1,2) = %v, want 3 (trimmed)", f.Value(1, 2))
	}
	if !f.Value(2, 2).IsNull() {
		t.Error("empty label should become null")
	}
}

func TestFrameFromTable_NoHeader(t *testing.T) {
	table := NewTableFromStrings([][]string{
		{"1", "x"},
		{"2"},
	})

	f, err := FrameFromTable(table, FrameOptions{})
	if err != nil {
		t.Fatalf("FrameFromTable error: %v", err)
	}
	if f.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", f.RowCount())
	}
	names := f.ColumnNames()
	if names[0] != "A" || names[1] != "B" {
		t.Errorf("ColumnNames() = %v, want [A B]", names)
	}
	if !f.Value(1, 1).IsNull() {
		t.Error("missing cell in ragged row should be null")
	}
}

func TestFrameFromTable_CustomTokens(t *testing.T) {
	table := NewTableFromStrings([][]string{
		{"1"},
		{"missing"},
		{""},
	})

	f, err := FrameFromTable(table, FrameOptions{NullTokens: []string{"missing"}})
	if err != nil {
		t.Fatalf("FrameFromTable error: %v", err)
	}
	// "" is no longer a null token, so the column cannot be numeric.
	col, _ := f.Column(0)
	if col.Kind != KindString {
		t.Errorf("kind = %v, want string", col.Kind)
	}
	if !f.Value(0, 1).IsNull() {
		t.Error("custom token should become null")
	}
	if !f.Value(0, 2).Equal(String("")) {
		t.Errorf("Value(0,2) = %#v, want empty string", f.Value(0, 2))
	}
}

func TestFrameFromTable_DefaultTokensAndLayouts(t *testing.T) {
	table := NewTableFromStrings([][]string{
		{"when", "score"},
		{"2024-03-05T06:07:08", "N/A"},
		{"2024-03-05 06:07:08", "2"},
	})

	f, err := FrameFromTable(table, FrameOptions{HeaderRow: true})
	if err != nil {
		t.Fatalf("FrameFromTable error: %v", err)
	}
	want := time.Date(2024, 3, 5, 6, 7, 8, 0, time.UTC)
	for row := 0; row < 2; row++ {
		if got, ok := f.Value(0, row).Time(); !ok || !got.Equal(want) {
			t.Errorf("Value(0,%d) = %v, want %v", row, f.Value(0, row), want)
		}
	}
	if !f.Value(1, 0).IsNull() {
		t.Error("N/A should become null")
	}
	col, _ := f.Column(1)
	if col.Kind != KindNumber {
		t.Errorf("score kind = %v, want number", col.Kind)
	}
}

func TestFrameFromTable_HeaderOnly(t *testing.T) {
	table := NewTableFromStrings([][]string{{"x", "y"}})

	f, err := FrameFromTable(table, FrameOptions{HeaderRow: true})
	if err != nil {
		t.Fatalf("FrameFromTable error: %v", err)
	}
	if f.RowCount() != 0 || f.ColumnCount() != 2 {
		t.Errorf("dimensions = %dx%d, want 0x2", f.RowCount(), f.ColumnCount())
	}
}

func TestColumnLetters(t *testing.T) {
	tests := map[int]string{0: "A", 25: "Z", 26: "AA", 27: "AB", 701: "ZZ", 702: "AAA"}
	for idx, want := range tests {
		if got := columnLetters(idx); got != want {
			t.Errorf("columnLetters(%d) = %q, want %q", idx, got, want)
		}
	}
}
