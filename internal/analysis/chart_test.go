package analysis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/structviz/cifview/internal/structure"
)

func TestRenderChainChart(t *testing.T) {
	sum := structure.Summary{
		Models:   1,
		Chains:   2,
		Residues: 150,
		Atoms:    1200,
		PerChain: []structure.ChainSummary{
			{ID: "A", Residues: 100, Atoms: 800},
			{ID: "B", Residues: 50, Atoms: 400},
		},
	}

	var buf bytes.Buffer
	if err := RenderChainChart(&buf, "1ABC", sum); err != nil {
		t.Fatalf("RenderChainChart: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "echarts") {
		t.Error("expected echarts markup in output")
	}
	for _, want := range []string{"1ABC", `"A"`, `"B"`, "Residues", "Atoms"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %s", want)
		}
	}
}

func TestRenderChainChartNoChains(t *testing.T) {
	var buf bytes.Buffer
	err := RenderChainChart(&buf, "empty", structure.Summary{})
	if err == nil {
		t.Fatal("expected error for structure without chains")
	}
}
