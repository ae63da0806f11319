package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/tickets"
)

var (
	first    int
	last     int
	strict   bool
	pattern  string
	outPath  string
	timeout  time.Duration
	logLevel string
)

func Execute() error {
	root := &cobra.Command{
		Use:          "ticketscan [pages...]",
		Short:        "Extract ticket codes from scanned pages and reconcile them against a range",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         scan,
	}

	root.Flags().IntVar(&first, "first", 1, "first expected sequence number")
	root.Flags().IntVar(&last, "last", 321, "last expected sequence number")
	root.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any expected ticket is missing")
	root.Flags().StringVar(&pattern, "pattern", tickets.DefaultPattern, "extraction regexp with named groups seq and code")
	root.Flags().StringVarP(&outPath, "out", "o", "", "CSV output file (default stdout)")
	root.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "OCR request timeout per page")
	root.Flags().StringVar(&logLevel, "log-level", config.LogLevelInfo, "debug, info, warning or error")
	return root.Execute()
}

func scan(cmd *cobra.Command, paths []string) error {
	if first > last {
		return fmt.Errorf("--first %d is after --last %d", first, last)
	}
	log, err := logger.New(config.LogConfig{Level: logLevel, Type: config.LogTypeConsole})
	if err != nil {
		return err
	}
	ocrCfg, err := config.LoadOCR()
	if err != nil {
		return err
	}
	extractor, err := tickets.NewExtractor(pattern)
	if err != nil {
		return err
	}

	var src tickets.TextSource
	if ocrCfg.APIKey != "" {
		src = tickets.NewOCRClient(ocrCfg.APIURL, ocrCfg.APIKey, timeout)
	} else {
		log.Warn("OCR_API_KEY is not set, only text pages can be read")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	found, failed, err := tickets.NewScanner(src, extractor, log).Scan(ctx, paths)
	if err != nil {
		return err
	}
	res := tickets.Reconcile(found, first, last)

	var out io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := tickets.WriteCSV(out, res.Matched); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	tickets.WriteSummary(cmd.ErrOrStderr(), res)
	if failed > 0 {
		log.Warn("pages skipped", "count", failed)
	}

	if strict {
		return res.CheckMissing()
	}
	return nil
}
