package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/structviz/cifview/internal/structure"
)

var convertOutput string

var convertCmd = &cobra.Command{
	Use:   "convert <file> [output]",
	Short: "Convert a structure file to PDB format",
	Long:  `Parses a structure file (mmCIF or PDB) and writes it out in PDB format. Atom serial numbers are renumbered sequentially; the atom count is preserved.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		s, _, err := structure.Parse(args[0], data)
		if err != nil {
			return err
		}

		out := convertOutput
		if len(args) == 2 {
			out = args[1]
		}
		if out == "" {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".pdb"
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := structure.WritePDB(f, s); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}

		fmt.Fprintf(os.Stderr, "Wrote %s (%d atoms)\n", out, s.AtomCount())
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file (default: input with .pdb extension)")
	rootCmd.AddCommand(convertCmd)
}
