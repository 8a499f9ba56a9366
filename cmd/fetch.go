package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/structviz/cifview/internal/rcsb"
)

var fetchDir string

var fetchCmd = &cobra.Command{
	Use:   "fetch <pdb-id>...",
	Short: "Download CIF entries from RCSB",
	Long:  `Downloads one or more entries from https://files.rcsb.org by four-character PDB ID and writes them to the current directory.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := rcsb.New("")

		for _, id := range args {
			if err := rcsb.ValidateID(id); err != nil {
				return err
			}
			if err := fetchOne(cmd, client, strings.ToUpper(id)); err != nil {
				return err
			}
		}
		return nil
	},
}

func fetchOne(cmd *cobra.Command, client *rcsb.Client, id string) error {
	body, size, err := client.Open(cmd.Context(), id)
	if err != nil {
		return err
	}
	defer body.Close()

	path := id + ".cif"
	if fetchDir != "" {
		if err := os.MkdirAll(fetchDir, 0o755); err != nil {
			return err
		}
		path = filepath.Join(fetchDir, id+".cif")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bar := progressbar.DefaultBytes(size, "downloading "+id)
	if _, err := io.Copy(io.MultiWriter(f, bar), body); err != nil {
		return fmt.Errorf("downloading %s: %w", id, err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchDir, "dir", "d", "", "directory to write downloaded files to")
	rootCmd.AddCommand(fetchCmd)
}
