package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

const readings = "hour,celsius,pressure\n1,10,1000\n2,,1001\n,25,1002\n4,40,\n"

func TestRun(t *testing.T) {
	csvPath := writeFixture(t, "readings.csv", readings)
	optsPath := writeFixture(t, "opts.json", `{"xIndex": 0, "yIndex": 2, "nullValueMode": "null as zero"}`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "defaults pass nulls through",
			args: []string{"-header", csvPath},
			want: "[[1,10],[2,null],[4,40]]\n",
		},
		{
			name: "connected drops null y",
			args: []string{"-header", "-null", "connected", csvPath},
			want: "[[1,10],[4,40]]\n",
		},
		{
			name: "columns by name",
			args: []string{"-header", "-xcol", "hour", "-ycol", "pressure", "-null", "null as zero", csvPath},
			want: "[[1,1000],[2,1001],[4,0]]\n",
		},
		{
			name: "tsv output",
			args: []string{"-header", "-format", "tsv", csvPath},
			want: "1\t10\n2\tnull\n4\t40\n",
		},
		{
			name: "config file",
			args: []string{"-header", "-config", optsPath, csvPath},
			want: "[[1,1000],[2,1001],[4,0]]\n",
		},
		{
			name: "flags override config file",
			args: []string{"-header", "-config", optsPath, "-y", "1", "-null", "connected", csvPath},
			want: "[[1,10],[4,40]]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr: %s", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestRun_Delimiter(t *testing.T) {
	path := writeFixture(t, "export.txt", "x;y\n1;2\n")

	code, stdout, stderr := runCLI(t, "-header", "-delimiter", ";", path)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if stdout != "[[1,2]]\n" {
		t.Errorf("stdout = %q", stdout)
	}

	path = writeFixture(t, "export.txt", "x\ty\n3\t4\n")
	code, stdout, _ = runCLI(t, "-header", "-delimiter", "tab", path)
	if code != 0 || stdout != "[[3,4]]\n" {
		t.Errorf("tab delimiter: code %d, stdout %q", code, stdout)
	}
}

func TestRun_Warnings(t *testing.T) {
	path := writeFixture(t, "readings.csv", readings)

	_, _, stderr := runCLI(t, "-header", path)
	if !strings.Contains(stderr, "warning: dropped-rows: 1 of 4 rows produced no pair") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_Errors(t *testing.T) {
	csvPath := writeFixture(t, "readings.csv", readings)
	badOpts := writeFixture(t, "bad.json", `{"xIndex": "zero"}`)

	tests := []struct {
		name   string
		args   []string
		code   int
		stderr string
	}{
		{"no file", nil, 2, "Usage: plotpairs"},
		{"unknown flag", []string{"-bogus", csvPath}, 2, "flag provided but not defined"},
		{"bad mode", []string{"-null", "sometimes", csvPath}, 2, "sometimes"},
		{"bad format", []string{"-format", "xml", csvPath}, 2, "unknown output format"},
		{"bad delimiter", []string{"-delimiter", "ab", csvPath}, 2, "invalid delimiter"},
		{"missing file", []string{filepath.Join(t.TempDir(), "nope.csv")}, 1, "opening file"},
		{"index out of range", []string{"-y", "7", csvPath}, 1, "out of range"},
		{"unknown column", []string{"-header", "-ycol", "wind", csvPath}, 1, `"wind" not found`},
		{"bad config", []string{"-config", badOpts, csvPath}, 1, "parsing config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.code, stderr)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want empty", stdout)
			}
			if !strings.Contains(stderr, tt.stderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.stderr)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	code, _, stderr := runCLI(t, "-h")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stderr, "-null") {
		t.Errorf("help output missing flags: %q", stderr)
	}
}
