// # internal/ui/report/formats/csv.go
package formats

import (
	"encoding/csv"
	"io"
	"modfather/internal/engine/graph"
	"strings"
)

// CSVGenerator writes the edge list, one from,to record per edge, sorted by
// (from, to).
type CSVGenerator struct {
	Header bool
}

func NewCSVGenerator(header bool) *CSVGenerator {
	return &CSVGenerator{Header: header}
}

func (c *CSVGenerator) Generate(g *graph.Graph) (string, error) {
	var buf strings.Builder
	if err := c.Write(&buf, g); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (c *CSVGenerator) Write(w io.Writer, g *graph.Graph) error {
	cw := csv.NewWriter(w)
	if c.Header {
		if err := cw.Write([]string{"from", "to"}); err != nil {
			return err
		}
	}
	for _, edge := range g.Edges() {
		if err := cw.Write([]string{edge.From, edge.To}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
