// cmd/stencilgen/main.go — CLI for the finite-difference stencil generator.
//
// Reads a LaTeX document, generates central-difference stencils for every
// display-math expression, and writes a combined LaTeX document, optionally
// splitting one standalone document per stencil into a directory.
//
// Usage:
//
//	stencilgen --input final_expressions.tex --output discretization.tex
//	stencilgen -i in.tex -o out.tex --orders 2 --split-dir stencils
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/njchilds90/stencilgen/render"
	"github.com/njchilds90/stencilgen/stencil"
)

var (
	inputPath  string
	outputPath string
	orders     []int
	coordsPath string
	splitDir   string
)

var rootCmd = &cobra.Command{
	Use:          "stencilgen",
	Short:        "Generate finite-difference stencils from LaTeX expressions",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the source LaTeX document")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "path to write the combined document")
	rootCmd.Flags().IntSliceVar(&orders, "orders", []int{2, 4}, "accuracy orders to generate")
	rootCmd.Flags().StringVar(&coordsPath, "coords", "", "YAML coordinate-system file (default: spherical)")
	rootCmd.Flags().StringVar(&splitDir, "split-dir", "", "also write one document per stencil into this directory")
	rootCmd.Flags().Lookup("split-dir").NoOptDefVal = "stencils"
	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("output")
}

func run(cmd *cobra.Command, args []string) error {
	cfg := stencil.DefaultConfig()
	cfg.Orders = orders
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	if coordsPath != "" {
		coords, err := stencil.LoadCoords(coordsPath)
		if err != nil {
			return err
		}
		cfg.Coords = coords
	}

	text, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	result := stencil.Process(string(text), cfg)

	if err := render.WriteCombined(outputPath, result.Records); err != nil {
		return err
	}
	fmt.Printf("Wrote discretization document to %s\n", outputPath)

	if splitDir != "" {
		n, err := render.WriteSplit(splitDir, result.Records)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %d stencil files to %s\n", n, splitDir)
	}

	if len(result.Skips) > 0 {
		fmt.Fprintf(os.Stderr, "%d expression(s) skipped; see warnings above\n", len(result.Skips))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
