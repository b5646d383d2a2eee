package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mchmarny/riq/pkg/config"
	"github.com/mchmarny/riq/pkg/ifv"
	urfave "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	yamlIndent   = 2
	tablePadding = 2
)

// table is implemented by values that can be printed with --format table.
type table interface {
	header() []string
	rows() [][]string
}

func writer(cmd *urfave.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case config.FormatYAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(yamlIndent)
		if err := e.Encode(v); err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		return e.Close()
	case config.FormatTable:
		t, ok := v.(table)
		if !ok {
			return fmt.Errorf("table format not supported for %T", v)
		}
		return writeTable(w, t)
	default:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		if err := e.Encode(v); err != nil {
			return fmt.Errorf("error encoding json: %w", err)
		}
		return nil
	}
}

func writeTable(w io.Writer, t table) error {
	tw := tabwriter.NewWriter(w, 0, 0, tablePadding, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.header(), "\t"))
	for _, r := range t.rows() {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// number is a float that encodes NaN and infinities as JSON strings.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(f)
}

func (n number) String() string {
	return strconv.FormatFloat(float64(n), 'f', int(ifv.RIQPrecision), 64)
}

type resultView struct {
	Name string `json:"name" yaml:"name"`
	RIQ  number `json:"riq" yaml:"riq"`
}

type resultViews []resultView

func newResultViews(results []ifv.ScoreResult) resultViews {
	list := make(resultViews, len(results))
	for i, r := range results {
		list[i] = resultView{Name: r.Name, RIQ: number(r.RIQ)}
	}
	return list
}

func (l resultViews) header() []string {
	return []string{"NAME", "RIQ"}
}

func (l resultViews) rows() [][]string {
	rows := make([][]string, len(l))
	for i, r := range l {
		rows[i] = []string{r.Name, r.RIQ.String()}
	}
	return rows
}

type rankedView struct {
	Rank  int    `json:"rank" yaml:"rank"`
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
	RIQ   number `json:"riq" yaml:"riq"`
}

type rankedViews []rankedView

func newRankedViews(ranked []ifv.RankedResult) rankedViews {
	list := make(rankedViews, len(ranked))
	for i, r := range ranked {
		list[i] = rankedView{
			Rank:  r.Rank,
			Index: r.Index,
			Name:  r.Name,
			RIQ:   number(r.RIQ),
		}
	}
	return list
}

func (l rankedViews) header() []string {
	return []string{"RANK", "NAME", "RIQ"}
}

func (l rankedViews) rows() [][]string {
	rows := make([][]string, len(l))
	for i, r := range l {
		rows[i] = []string{strconv.Itoa(r.Rank), r.Name, r.RIQ.String()}
	}
	return rows
}

type detailView struct {
	Name string `json:"name" yaml:"name"`
	Mu   number `json:"mu" yaml:"mu"`
	Nu   number `json:"nu" yaml:"nu"`
	Pi   number `json:"pi" yaml:"pi"`
	Hi   number `json:"hi" yaml:"hi"`
	Lo   number `json:"lo" yaml:"lo"`
	IQ   number `json:"iq" yaml:"iq"`
	RIQ  number `json:"riq" yaml:"riq"`
}

type detailViews []detailView

func newDetailViews(details []ifv.Breakdown) detailViews {
	list := make(detailViews, len(details))
	for i, d := range details {
		list[i] = detailView{
			Name: d.Name,
			Mu:   number(d.Mu),
			Nu:   number(d.Nu),
			Pi:   number(d.Pi),
			Hi:   number(d.Hi),
			Lo:   number(d.Lo),
			IQ:   number(d.IQ),
			RIQ:  number(d.RIQ),
		}
	}
	return list
}

func (l detailViews) header() []string {
	return []string{"NAME", "MU", "NU", "PI", "HI", "LO", "IQ", "RIQ"}
}

func (l detailViews) rows() [][]string {
	rows := make([][]string, len(l))
	for i, d := range l {
		rows[i] = []string{
			d.Name,
			d.Mu.String(),
			d.Nu.String(),
			d.Pi.String(),
			d.Hi.String(),
			d.Lo.String(),
			d.IQ.String(),
			d.RIQ.String(),
		}
	}
	return rows
}
