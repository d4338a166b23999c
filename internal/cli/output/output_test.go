package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fileRow struct {
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size" yaml:"size"`
}

func (r fileRow) Line() string { return r.Path }

type fileTable []fileRow

func (t fileTable) Headers() []string { return []string{"Path", "Size"} }

func (t fileTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		rows = append(rows, []string{r.Path, "n/a"})
	}
	return rows
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yml ", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestPrinter_PrintTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatTable, false)

	require.NoError(t, p.Print(fileTable{{Path: "/a", Size: 1}, {Path: "/b", Size: 2}}))

	out := buf.String()
	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "SIZE")
	assert.Contains(t, out, "/a")
	assert.Contains(t, out, "/b")
}

func TestPrinter_TableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatTable, false)

	require.NoError(t, p.Print(fileRow{Path: "/x", Size: 3}))

	var got fileRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, fileRow{Path: "/x", Size: 3}, got)
}

func TestPrinter_PrintYAML(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatYAML, false)

	require.NoError(t, p.Print(fileRow{Path: "/y", Size: 9}))

	var got fileRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "/y", got.Path)
	assert.EqualValues(t, 9, got.Size)
}

func TestPrinter_UnknownFormat(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, Format("xml"), false)
	assert.Error(t, p.Print(fileRow{}))
	assert.Error(t, p.Stream(fileRow{}))
}

func TestPrinter_Stream(t *testing.T) {
	t.Run("Table", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, FormatTable, false)
		require.NoError(t, p.Stream(fileRow{Path: "/one"}))
		require.NoError(t, p.Stream(fileRow{Path: "/two"}))
		assert.Equal(t, "/one\n/two\n", buf.String())
	})

	t.Run("JSONLines", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, FormatJSON, false)
		require.NoError(t, p.Stream(fileRow{Path: "/one", Size: 1}))
		require.NoError(t, p.Stream(fileRow{Path: "/two", Size: 2}))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		var second fileRow
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
		assert.Equal(t, "/two", second.Path)
	})

	t.Run("YAMLDocuments", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, FormatYAML, false)
		require.NoError(t, p.Stream(fileRow{Path: "/one"}))
		require.NoError(t, p.Stream(fileRow{Path: "/two"}))
		assert.Equal(t, 2, strings.Count(buf.String(), "---\n"))
	})
}

func TestSimpleTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SimpleTable(&buf, [][2]string{{"Path", "/etc/hosts"}, {"Type", "file"}}))

	out := buf.String()
	assert.Contains(t, out, "Path")
	assert.Contains(t, out, "/etc/hosts")
	assert.Contains(t, out, "file")
}

func TestPrinter_Messages(t *testing.T) {
	var plain bytes.Buffer
	p := NewPrinter(&plain, FormatTable, false)
	p.Success("ok")
	p.Printf("%d files\n", 3)
	assert.Equal(t, "ok\n3 files\n", plain.String())

	var colored bytes.Buffer
	NewPrinter(&colored, FormatTable, true).Success("ok")
	assert.Equal(t, "\033[32mok\033[0m\n", colored.String())
}
