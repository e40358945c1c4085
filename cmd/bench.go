package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/fastmse/internal/report"
	"github.com/cwbudde/fastmse/mse"
	"github.com/spf13/cobra"
)

var (
	benchSize     int
	benchIters    int
	benchSave     bool
	benchDataDir  string
	keepLast      int
	olderThanDays int
	forceClean    bool
)

// benchSink keeps timed calls from being optimized away.
var benchSink uint64

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure kernel throughput",
	Long: `Times every kernel variant on synthetic random buffers for RGBA (with and
without alpha) and YCbCr (4:2:0 plane sizes). With --save the results are
stored as a report under --data-dir.`,
	RunE: runBench,
}

var listReportsCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved benchmark reports",
	RunE:  runListReports,
}

var cleanReportsCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete old benchmark reports",
	Long: `Delete saved reports based on retention policy.
Keep only the newest N reports, delete reports older than N days, or both.`,
	RunE: runCleanReports,
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.AddCommand(listReportsCmd)
	benchCmd.AddCommand(cleanReportsCmd)

	benchCmd.PersistentFlags().StringVar(&benchDataDir, "data-dir", "./data", "Base directory for report storage")

	benchCmd.Flags().IntVar(&benchSize, "size", 1<<20, "Buffer size in bytes (rounded down to a multiple of 4)")
	benchCmd.Flags().IntVar(&benchIters, "iters", 100, "Timed calls per kernel")
	benchCmd.Flags().BoolVar(&benchSave, "save", false, "Save the results as a report")

	cleanReportsCmd.Flags().IntVar(&keepLast, "keep-last", 0, "Keep only the newest N reports (0 = keep all)")
	cleanReportsCmd.Flags().IntVar(&olderThanDays, "older-than", 0, "Delete reports older than N days (0 = no age limit)")
	cleanReportsCmd.Flags().BoolVarP(&forceClean, "force", "f", false, "Skip confirmation prompt")
}

func runBench(cmd *cobra.Command, args []string) error {
	size := benchSize &^ 3
	if size < 4 {
		return fmt.Errorf("--size must be at least 4 bytes")
	}
	if benchIters < 1 {
		return fmt.Errorf("--iters must be positive")
	}

	rng := rand.New(rand.NewSource(1))
	ref := make([]byte, size)
	cand := make([]byte, size)
	rng.Read(ref)
	rng.Read(cand)

	active := mse.Active()
	slog.Info("Benchmark started", "size", size, "iters", benchIters, "active", active.String())

	var results []report.Result
	for _, k := range mse.Kernels() {
		for _, op := range []string{"rgba", "rgb", "ycbcr"} {
			results = append(results, measure(k, op, ref, cand, benchIters))
		}
	}

	if err := printResults(os.Stdout, results, active); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if !benchSave {
		return nil
	}

	reportStore, err := report.NewFSStore(benchDataDir)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}

	r := report.NewReport(runtime.GOARCH, active.String(), size, benchIters, results)
	if err := reportStore.Save(r); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	fmt.Printf("\nSaved report %s\n", r.ID)
	return nil
}

// measure times iters calls of one kernel operation. YCbCr uses ref/cand as
// the luma plane and quarter-size prefixes as the two chroma planes.
func measure(k *mse.Kernel, op string, ref, cand []byte, iters int) report.Result {
	n := len(ref)
	c := n / 4
	bytes := int64(n)

	var call func() uint64
	switch op {
	case "rgba":
		call = func() uint64 { return k.SumRGBA(ref, cand, n, true) }
	case "rgb":
		call = func() uint64 { return k.SumRGBA(ref, cand, n, false) }
	default:
		bytes = int64(n + 2*c)
		call = func() uint64 { return k.SumYCbCr(ref, cand, n, ref, cand, c, cand, ref, c) }
	}

	start := time.Now()
	for i := 0; i < iters; i++ {
		benchSink += call()
	}
	elapsed := time.Since(start)

	nsPerOp := float64(elapsed.Nanoseconds()) / float64(iters)
	if nsPerOp <= 0 {
		nsPerOp = 1
	}

	return report.Result{
		Kernel:   op,
		Backend:  k.Backend().String(),
		Bytes:    bytes,
		NsPerOp:  nsPerOp,
		MBPerSec: float64(bytes) / nsPerOp * 1e3,
	}
}

func printResults(out io.Writer, results []report.Result, active *mse.Kernel) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KERNEL\tBACKEND\tBYTES\tNS/OP\tMB/S")
	fmt.Fprintln(w, "------\t-------\t-----\t-----\t----")

	for _, r := range results {
		backend := r.Backend
		if backend == active.Backend().String() {
			backend += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%.1f\n", r.Kernel, backend, formatBytes(r.Bytes), r.NsPerOp, r.MBPerSec)
	}

	return w.Flush()
}

func runListReports(cmd *cobra.Command, args []string) error {
	reportStore, err := report.NewFSStore(benchDataDir)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}

	infos, err := reportStore.List()
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	if len(infos) == 0 {
		fmt.Println("No reports found.")
		return nil
	}

	if err := printReports(os.Stdout, infos); err != nil {
		return fmt.Errorf("failed to write report list: %w", err)
	}

	fmt.Printf("\nTotal reports: %d\n", len(infos))
	return nil
}

func printReports(out io.Writer, infos []report.Info) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REPORT ID\tTIMESTAMP\tARCH\tACTIVE\tSIZE\tBEST MB/S")
	fmt.Fprintln(w, "---------\t---------\t----\t------\t----\t---------")

	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f\n",
			shortID(info.ID),
			info.Timestamp.Format("2006-01-02 15:04:05"),
			info.Arch,
			info.Active,
			formatBytes(int64(info.Size)),
			info.Best,
		)
	}

	return w.Flush()
}

func runCleanReports(cmd *cobra.Command, args []string) error {
	if keepLast == 0 && olderThanDays == 0 {
		return fmt.Errorf("must specify either --keep-last or --older-than")
	}

	reportStore, err := report.NewFSStore(benchDataDir)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}

	infos, err := reportStore.List()
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	toDelete := selectReportsForDeletion(infos, keepLast, olderThanDays, time.Now())
	if len(toDelete) == 0 {
		fmt.Println("No reports match deletion criteria.")
		return nil
	}

	fmt.Printf("Found %d report(s) to delete:\n", len(toDelete))
	for _, info := range toDelete {
		fmt.Printf("  - %s (%s, %s)\n", shortID(info.ID), info.Active, info.Timestamp.Format("2006-01-02 15:04:05"))
	}

	if !forceClean {
		fmt.Print("\nProceed with deletion? [y/N]: ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	deleted := 0
	failed := 0
	for _, info := range toDelete {
		if err := reportStore.Delete(info.ID); err != nil {
			slog.Error("Failed to delete report", "id", info.ID, "error", err)
			failed++
		} else {
			slog.Info("Deleted report", "id", info.ID)
			deleted++
		}
	}

	fmt.Printf("\nDeleted %d report(s), %d failed.\n", deleted, failed)
	return nil
}

// selectReportsForDeletion applies the retention policy: reports older than
// olderThanDays (relative to now) and all but the keepLast newest. Either rule
// is disabled by a zero value.
func selectReportsForDeletion(infos []report.Info, keepLast, olderThanDays int, now time.Time) []report.Info {
	sorted := make([]report.Info, len(infos))
	copy(sorted, infos)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	var cutoff time.Time
	if olderThanDays > 0 {
		cutoff = now.AddDate(0, 0, -olderThanDays)
	}

	var toDelete []report.Info
	for i, info := range sorted {
		tooMany := keepLast > 0 && i >= keepLast
		tooOld := olderThanDays > 0 && info.Timestamp.Before(cutoff)
		if tooMany || tooOld {
			toDelete = append(toDelete, info)
		}
	}

	return toDelete
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12] + "..."
	}
	return id
}

// formatBytes formats bytes as human-readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
