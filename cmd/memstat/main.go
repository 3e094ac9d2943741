package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/strings-engine/collections/vect"
	"github.com/wippyai/strings-engine/mem"
	"github.com/wippyai/strings-engine/mem/linear"
)

func main() {
	var (
		steps       = flag.Int("steps", 1000, "Workload steps to run before reporting")
		seed        = flag.Uint64("seed", 1, "Workload random seed")
		script      = flag.Bool("script", true, "Run a wasm guest whose memory is charged under Job")
		metricsAddr = flag.String("metrics", "", "Serve Prometheus metrics on this address and keep running (e.g. :9090)")
		verbose     = flag.Bool("v", false, "Debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck
	mem.SetLogger(log.Named("mem"))
	vect.SetLogger(log.Named("vect"))
	linear.SetLogger(log.Named("linear"))

	mem.Init()
	defer mem.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(ctx, *seed, *script); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, *steps, *seed, *script, *metricsAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func run(ctx context.Context, steps int, seed uint64, script bool, metricsAddr string) error {
	l := mem.Default()

	w, err := newWorld(ctx, l, seed, script)
	if err != nil {
		return err
	}
	defer w.close(ctx)

	for range steps {
		w.step()
	}
	printReport(os.Stdout, l, w.ops)

	if metricsAddr == "" {
		return nil
	}
	return serveMetrics(ctx, w, metricsAddr)
}

// printReport writes the ledger report, highlighting non-empty tags.
func printReport(out io.Writer, l *mem.Ledger, ops uint64) {
	header := color.New(color.Bold)
	used := color.New(color.FgYellow)
	total := color.New(color.FgGreen, color.Bold)

	lines := strings.Split(strings.TrimSuffix(l.Report(), "\n"), "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			header.Fprintln(out, line)
		case i == len(lines)-1:
			total.Fprintln(out, line)
		case strings.HasSuffix(line, ": 0 B"), strings.HasPrefix(line, "\t-"):
			fmt.Fprintln(out, line)
		default:
			used.Fprintln(out, line)
		}
	}
	fmt.Fprintf(out, "\n%s operations\n", humanize.Comma(int64(ops)))
}

// serveMetrics exposes the ledger and keeps the workload running until ctx
// is cancelled.
func serveMetrics(ctx context.Context, w *world, addr string) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		mem.NewCollector(w.ledger, nil),
		collectors.NewGoCollector(),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	fmt.Printf("\nServing metrics on %s/metrics (Ctrl+C to stop)\n", addr)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("metrics server: %w", err)
		case <-ticker.C:
			for range 10 {
				w.step()
			}
		}
	}
}
