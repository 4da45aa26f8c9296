package csvdoc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func cells(r *Reader) [][]string {
	table := r.Table()
	out := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		for _, c := range row {
			out[i] = append(out[i], c.Text)
		}
	}
	return out
}

func assertRecords(t *testing.T, got, want [][]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d records %v, want %d records %v", len(got), got, len(want), want)
	}
	for i := range want {
		if strings.Join(got[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("record %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOpenReader(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		opts      Options
		delimiter rune
		want      [][]string
	}{
		{
			name:      "comma",
			input:     "x,y\n1,10\n2,\n3,30\n",
			delimiter: ',',
			want:      [][]string{{"x", "y"}, {"1", "10"}, {"2", ""}, {"3", "30"}},
		},
		{
			name:      "sniffed tab",
			input:     "time\tvalue\n2024-01-01\t1,5\n",
			delimiter: '\t',
			want:      [][]string{{"time", "value"}, {"2024-01-01", "1,5"}},
		},
		{
			name:      "explicit semicolon",
			input:     "a;b\n1;2\n",
			opts:      Options{Delimiter: ';'},
			delimiter: ';',
			want:      [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:      "ragged rows and quotes",
			input:     "a,b,c\n1\n\"x, y\",2\n",
			delimiter: ',',
			want:      [][]string{{"a", "b", "c"}, {"1"}, {"x, y", "2"}},
		},
		{
			name:      "comments",
			input:     "# exported\nx,y\n1,2\n",
			opts:      Options{Comment: '#'},
			delimiter: ',',
			want:      [][]string{{"x", "y"}, {"1", "2"}},
		},
		{
			name:      "utf-8 bom",
			input:     "\xef\xbb\xbfx,y\n1,2\n",
			delimiter: ',',
			want:      [][]string{{"x", "y"}, {"1", "2"}},
		},
		{
			name:      "empty",
			input:     "",
			delimiter: ',',
			want:      [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := OpenReader(strings.NewReader(tt.input), tt.opts)
			if err != nil {
				t.Fatalf("OpenReader() failed: %v", err)
			}
			if r.Delimiter() != tt.delimiter {
				t.Errorf("Delimiter() = %q, want %q", r.Delimiter(), tt.delimiter)
			}
			if r.RecordCount() != len(tt.want) {
				t.Errorf("RecordCount() = %d, want %d", r.RecordCount(), len(tt.want))
			}
			assertRecords(t, cells(r), tt.want)
		})
	}
}

func TestOpenReader_Encodings(t *testing.T) {
	t.Run("windows-1252", func(t *testing.T) {
		input := []byte("city,temp\nZ\xfcrich,4\n")
		r, err := OpenReader(bytes.NewReader(input), Options{Encoding: "windows-1252"})
		if err != nil {
			t.Fatalf("OpenReader() failed: %v", err)
		}
		assertRecords(t, cells(r), [][]string{{"city", "temp"}, {"Zürich", "4"}})
	})

	t.Run("utf-16 bom overrides configured encoding", func(t *testing.T) {
		// "a,b\n" in UTF-16LE with BOM
		input := []byte{0xFF, 0xFE, 'a', 0, ',', 0, 'b', 0, '\n', 0}
		r, err := OpenReader(bytes.NewReader(input), Options{Encoding: "latin1"})
		if err != nil {
			t.Fatalf("OpenReader() failed: %v", err)
		}
		assertRecords(t, cells(r), [][]string{{"a", "b"}})
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := OpenReader(strings.NewReader("a"), Options{Encoding: "klingon"})
		if err == nil {
			t.Error("expected error for unknown encoding")
		}
	})
}

func TestOpenReader_LazyQuotes(t *testing.T) {
	r, err := OpenReader(strings.NewReader("a\"b,c\n"), Options{})
	if err != nil {
		t.Fatalf("lazy quote rejected: %v", err)
	}
	assertRecords(t, cells(r), [][]string{{"a\"b", "c"}})
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readings.csv")
	if err := os.WriteFile(path, []byte("x,y\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	table := r.Table()
	if table.Name != "readings" {
		t.Errorf("Name = %q, want readings", table.Name)
	}
	if table.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", table.RowCount())
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.csv"), Options{}); err == nil {
		t.Error("Open() expected error for missing file")
	}
}
