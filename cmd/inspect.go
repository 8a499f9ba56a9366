package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/structviz/cifview/internal/structure"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(14)
	chainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print metadata and composition of a structure file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		s, format, err := structure.Parse(args[0], data)
		if err != nil {
			return err
		}
		sum := s.Summarize()

		fmt.Println(headingStyle.Render(s.Name))
		printField("Format", strings.ToUpper(string(format)))
		printField("Size", humanize.Bytes(uint64(len(data))))

		h := s.Header
		printField("Entry", h.EntryID)
		printField("Title", h.Title)
		printField("Method", h.Method)
		printField("Deposited", h.DepositionDate)
		printField("Space group", h.SpaceGroup)
		if h.Resolution > 0 {
			printField("Resolution", fmt.Sprintf("%.2f Å", h.Resolution))
		}
		if c := h.Cell; c != nil {
			printField("Cell", fmt.Sprintf("a=%.2f b=%.2f c=%.2f α=%.1f β=%.1f γ=%.1f",
				c.A, c.B, c.C, c.Alpha, c.Beta, c.Gamma))
		}

		fmt.Println()
		fmt.Println(headingStyle.Render("Composition"))
		printField("Models", humanize.Comma(int64(sum.Models)))
		printField("Chains", humanize.Comma(int64(sum.Chains)))
		printField("Residues", humanize.Comma(int64(sum.Residues)))
		printField("Atoms", humanize.Comma(int64(sum.Atoms)))
		printField("Het atoms", humanize.Comma(int64(sum.HetAtoms)))

		for _, cs := range sum.PerChain {
			fmt.Printf("  %s  %s residues, %s atoms\n",
				chainStyle.Render("chain "+cs.ID),
				humanize.Comma(int64(cs.Residues)),
				humanize.Comma(int64(cs.Atoms)))
		}
		return nil
	},
}

func printField(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("%s %s\n", labelStyle.Render(label), value)
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
