// Package analysis renders derived statistics of a parsed structure.
package analysis

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/structviz/cifview/internal/structure"
)

// RenderChainChart writes an HTML page with a bar chart of per-chain
// residue and atom counts.
func RenderChainChart(w io.Writer, name string, sum structure.Summary) error {
	if len(sum.PerChain) == 0 {
		return fmt.Errorf("structure %s has no chains to chart", name)
	}

	chains := make([]string, len(sum.PerChain))
	residues := make([]opts.BarData, len(sum.PerChain))
	atoms := make([]opts.BarData, len(sum.PerChain))
	for i, cs := range sum.PerChain {
		chains[i] = cs.ID
		residues[i] = opts.BarData{Value: cs.Residues}
		atoms[i] = opts.BarData{Value: cs.Atoms}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s: per-chain composition", name),
			Subtitle: fmt.Sprintf("%d chains, %d residues, %d atoms", sum.Chains, sum.Residues, sum.Atoms),
		}),
	)
	bar.SetXAxis(chains).
		AddSeries("Residues", residues).
		AddSeries("Atoms", atoms)

	return bar.Render(w)
}
