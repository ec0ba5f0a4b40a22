package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/egor9814/rawbench"
	"github.com/egor9814/rawbench/interrupt"
)

type options struct {
	dir          string
	file         string
	blockSize    string
	alignment    int
	buffered     bool
	flush        string
	noSpaceCheck bool
	verbose      bool
}

func newRootCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "rbench [flags] [SIZE[:LABEL]...]",
		Short: "measure sequential write throughput with direct I/O",
		Long: `rbench writes each SIZE (a number of MiB, or a size such as 512MB or 2GB)
to a benchmark file with uncached, aligned writes and reports MB/s
(decimal megabytes). Without arguments the default suite is run.

The progress line is drawn between writes and its cost is part of the
measurement.`,
		Example: `  rbench
  rbench 64:small 1GB:large
  rbench --dir /mnt/data --flush timed 256`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.dir, "dir", "d", "", "directory for the benchmark file (default: executable directory)")
	f.StringVarP(&o.file, "file", "f", rawbench.DefaultFileName, "benchmark file name")
	f.StringVarP(&o.blockSize, "block-size", "b", "4MB", "size of every write")
	f.IntVar(&o.alignment, "alignment", rawbench.DefaultAlignment, "buffer and write alignment in bytes")
	f.BoolVar(&o.buffered, "buffered", false, "write through the page cache instead of direct I/O")
	f.StringVar(&o.flush, "flush", rawbench.FlushAfter.String(), "durability barrier: after, timed or none")
	f.BoolVar(&o.noSpaceCheck, "no-space-check", false, "skip the free space check before each run")
	f.BoolVar(&noColor, "no-color", false, "disable colored output")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "verbose mode")
	return cmd
}

func (o *options) benchmark() (*rawbench.Benchmark, error) {
	dir := o.dir
	if len(dir) == 0 {
		d, err := rawbench.ExecutableDir()
		if err != nil {
			return nil, errors.Wrap(err, "cannot locate executable directory")
		}
		dir = d
	}
	block, err := parseBytes(o.blockSize)
	if err != nil {
		return nil, err
	}
	flush, err := rawbench.ParseFlushPolicy(o.flush)
	if err != nil {
		return nil, err
	}
	mode := rawbench.IOModeDirect
	if o.buffered {
		mode = rawbench.IOModeBuffered
	}
	return rawbench.New(
		rawbench.WithPath(filepath.Join(dir, o.file)),
		rawbench.WithBlockSize(block),
		rawbench.WithAlignment(o.alignment),
		rawbench.WithIOMode(mode),
		rawbench.WithFlushPolicy(flush),
		rawbench.WithSpaceCheck(!o.noSpaceCheck),
	)
}

func run(cmd *cobra.Command, args []string, o *options) error {
	specs, err := parseRunSpecs(args)
	if err != nil {
		return err
	}
	b, err := o.benchmark()
	if err != nil {
		return err
	}
	cfg := b.Config()

	stop := interrupt.Install()
	defer stop()

	if err := b.Cleanup(); err != nil {
		warnf("%v\n", err)
	}
	defer func() {
		if err := b.Cleanup(); err != nil {
			warnf("%v\n", err)
		}
	}()

	if o.verbose {
		logf("target: %s\n", describeTarget(cfg.Path))
		logf("mode: %s, block %s, alignment %d, flush %s\n",
			cfg.Mode, formatBytes(uint64(cfg.BlockSize)), cfg.Alignment, cfg.Flush)
		for i, it := range specs {
			logf("%3d/%3d> %s (%d MiB)\n", i+1, len(specs), it.Label, it.SizeMB)
		}
	}

	res, err := b.RunSuite(cmd.Context(), specs, progressPrinter())
	if err != nil {
		return err
	}
	fmt.Print(formatSuite(res, cfg.Mode))
	return nil
}

func handleCommand(err error) {
	if err == nil {
		return
	}
	switch {
	case rawbench.IsCancelled(err):
		logln("\r" + paint("cancelled:", colorYellow) + " no results reported")
		os.Exit(130)
	case errors.Is(err, rawbench.ErrUnsupportedIoMode):
		logf("\r%s %v\n", paint("error:", colorRed), err)
		logln("hint: rerun with --buffered to measure through the page cache, or pick another --dir")
	default:
		logf("\r%s %v\n", paint("error:", colorRed), err)
	}
	os.Exit(1)
}

func main() {
	handleCommand(newRootCommand().Execute())
}
