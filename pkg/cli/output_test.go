package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/mchmarny/riq/pkg/config"
	"github.com/mchmarny/riq/pkg/ifv"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

var pair = []ifv.IFV{
	{Name: "A", Mu: 0.6, Nu: 0.3},
	{Name: "B", Mu: 0.2, Nu: 0.5},
}

func TestEncodeResults(t *testing.T) {
	tests := []struct {
		golden string
		format string
	}{
		{"score_json", config.FormatJSON},
		{"score_yaml", config.FormatYAML},
		{"score_table", config.FormatTable},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			var buf bytes.Buffer
			err := encode(&buf, tt.format, newResultViews(ifv.Score(pair)))
			require.NoError(t, err)
			newGolden(t).Assert(t, tt.golden, buf.Bytes())
		})
	}
}

func TestEncodeRankedTable(t *testing.T) {
	reversed := []ifv.IFV{pair[1], pair[0]}

	var buf bytes.Buffer
	err := encode(&buf, config.FormatTable, newRankedViews(ifv.Rank(ifv.Score(reversed))))
	require.NoError(t, err)
	newGolden(t).Assert(t, "score_sorted_table", buf.Bytes())
}

func TestEncodeDetailTable(t *testing.T) {
	var buf bytes.Buffer
	err := encode(&buf, config.FormatTable, newDetailViews(ifv.Explain(pair)))
	require.NoError(t, err)
	newGolden(t).Assert(t, "score_detail_table", buf.Bytes())
}

func TestEncodeTableUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := encode(&buf, config.FormatTable, map[string]string{"a": "b"})
	require.Error(t, err)
}

func TestNumberJSON(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.545, `0.545`},
		{-0.545, `-0.545`},
		{0, `0`},
		{math.NaN(), `"NaN"`},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			b, err := json.Marshal(number(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "0.5450", number(0.545).String())
	assert.Equal(t, "-0.0313", number(-0.0313).String())
	assert.Equal(t, "NaN", number(math.NaN()).String())
	assert.Equal(t, "+Inf", number(math.Inf(1)).String())
}
