package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mission-console/internal/config"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "mission-console",
		Short: "No-fly zone server for the drone mission console",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(simplifyCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the zones and start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Listen = fmt.Sprintf(":%d", port)
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port")
	return cmd
}

func simplifyCmd(configPath *string) *cobra.Command {
	var (
		maxVertices int
		out         string
	)

	cmd := &cobra.Command{
		Use:   "simplify [file.geojson]",
		Short: "Reduce every polygon in a GeoJSON file to a vertex count",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runSimplify(cfg, args[0], maxVertices, out)
		},
	}

	cmd.Flags().IntVarP(&maxVertices, "max-vertices", "n", 16, "Vertices to keep per ring")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
