package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/structviz/cifview/internal/config"
	"github.com/structviz/cifview/internal/db"
	"github.com/structviz/cifview/internal/gallery"
	"github.com/structviz/cifview/internal/rcsb"
	"github.com/structviz/cifview/internal/server"
	"github.com/structviz/cifview/internal/viewer"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web viewer",
	Long:  `Starts the cifview HTTP server: upload structures, view them in 3D, inspect metadata and export to PDB.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		dbPath := filepath.Join(cfg.DataDir, "cifview.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		store, err := viewer.NewStore(database, cfg.DataDir)
		if err != nil {
			return fmt.Errorf("creating store: %w", err)
		}

		g := gallery.New(cfg.ExamplesDir, cfg.Include, cfg.Exclude)
		client := rcsb.New(filepath.Join(cfg.DataDir, "cache"))

		v, err := viewer.New(store, g, client, cfg)
		if err != nil {
			return fmt.Errorf("creating viewer: %w", err)
		}

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAll,
		})
		v.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "cifview v%s starting on http://localhost:%d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  Examples: %s\n", cfg.ExamplesDir)

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
