package input

import (
	"math"
	"strings"
	"testing"

	"github.com/mchmarny/riq/pkg/ifv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedSet = []ifv.IFV{
	{Name: "A", Mu: 0.6, Nu: 0.3},
	{Name: "B", Mu: 0.2, Nu: 0.5},
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		path   string
		format Format
	}{
		{"testdata/set.json", ""},
		{"testdata/set.yaml", ""},
		{"testdata/set.csv", ""},
		{"testdata/set.json", FormatJSON},
		{"testdata/set.csv", FormatCSV},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := LoadFile(tt.path, tt.format)
			require.NoError(t, err)
			assert.Equal(t, expectedSet, got)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/missing.json", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "testdata/missing.json")
}

func TestLoadFileWrongFormat(t *testing.T) {
	_, err := LoadFile("testdata/set.csv", FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding json")
}

func TestLoadEmpty(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			got, err := Load(strings.NewReader("  \n"), f)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestLoadNull(t *testing.T) {
	got, err := Load(strings.NewReader("null"), FormatJSON)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadUnknownFormat(t *testing.T) {
	_, err := Load(strings.NewReader("[]"), Format("xml"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadCSV(t *testing.T) {
	t.Run("out of range and special values", func(t *testing.T) {
		doc := "name,mu,nu\nx,1.5,-0.2\ny,NaN,Inf\n"
		got, err := Load(strings.NewReader(doc), FormatCSV)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, ifv.IFV{Name: "x", Mu: 1.5, Nu: -0.2}, got[0])
		assert.True(t, math.IsNaN(got[1].Mu))
		assert.True(t, math.IsInf(got[1].Nu, 1))
	})

	t.Run("reordered and extra columns", func(t *testing.T) {
		got, err := Load(strings.NewReader("nu,extra,Name,mu\n0.3,zz,A,0.6\n"), FormatCSV)
		require.NoError(t, err)
		assert.Equal(t, []ifv.IFV{{Name: "A", Mu: 0.6, Nu: 0.3}}, got)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := Load(strings.NewReader("name,mu\nx,0.1\n"), FormatCSV)
		require.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("short record", func(t *testing.T) {
		_, err := Load(strings.NewReader("name,mu,nu\nx,0.1\n"), FormatCSV)
		require.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), "csv line 2")
	})

	t.Run("bad number", func(t *testing.T) {
		_, err := Load(strings.NewReader("name,mu,nu\nx,abc,0.1\n"), FormatCSV)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `parsing mu value "abc"`)
	})

	t.Run("duplicate names kept", func(t *testing.T) {
		got, err := Load(strings.NewReader("name,mu,nu\na,0.1,0.2\na,0.3,0.4\n"), FormatCSV)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
		err   bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{" csv ", FormatCSV, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.err {
				require.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a/b.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("set.YAML"))
	assert.Equal(t, FormatCSV, FormatFromPath("set.csv"))
	assert.Equal(t, FormatJSON, FormatFromPath("set.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("set.txt"))
	assert.Equal(t, FormatJSON, FormatFromPath(StdinPath))
}
