package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/fastmse/internal/cpu"
	"github.com/cwbudde/fastmse/mse"
	"github.com/spf13/cobra"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Show CPU features and the available kernels",
	Long: `Prints the detected CPU features, every kernel variant with its chunk
width, and the variant selected for this machine.`,
	RunE: runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(cmd *cobra.Command, args []string) error {
	return printBackends(os.Stdout, cpu.DetectFeatures(), mse.Active())
}

func printBackends(out io.Writer, features cpu.Features, active *mse.Kernel) error {
	fmt.Fprintf(out, "Architecture: %s\n", features.Architecture)
	fmt.Fprintf(out, "Features:     SSE2=%v AVX2=%v NEON=%v\n", features.HasSSE2, features.HasAVX2, features.HasNEON)
	if features.ForceGeneric {
		fmt.Fprintln(out, "Vector kernels disabled (purego build)")
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tCHUNK\tACTIVE")
	fmt.Fprintln(w, "-------\t-----\t------")

	for _, k := range mse.Kernels() {
		chunk := "-"
		if k.ChunkBytes() > 0 {
			chunk = fmt.Sprintf("%d B", k.ChunkBytes())
		}

		mark := ""
		if k == active {
			mark = "*"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\n", k.Backend(), chunk, mark)
	}

	return w.Flush()
}
