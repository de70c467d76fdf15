package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/gtfs-csv/config"
	"github.com/theoremus-urban-solutions/gtfs-csv/csv"
	"github.com/theoremus-urban-solutions/gtfs-csv/formatter"
	"github.com/theoremus-urban-solutions/gtfs-csv/gtfs"
	"github.com/theoremus-urban-solutions/gtfs-csv/internal"
	"github.com/theoremus-urban-solutions/gtfs-csv/metrics"
	"github.com/theoremus-urban-solutions/gtfs-csv/preprocess"
)

type options struct {
	mode        string
	configPath  string
	feedName    string
	path        string
	file        string
	files       string
	format      string
	sep         string
	metricsAddr string
	wait        bool
	skipHeader  bool
}

func main() {
	var o options
	flag.StringVar(&o.mode, "mode", "scan", "scan|dump")
	flag.StringVar(&o.configPath, "config", "", "config file (default: config.yml if present)")
	flag.StringVar(&o.feedName, "feed", "", "feed name from config.feeds[]")
	flag.StringVar(&o.path, "path", "", "GTFS zip, directory or file (overrides config)")
	flag.StringVar(&o.file, "file", "", "member to dump, e.g. stops.txt (dump mode)")
	flag.StringVar(&o.files, "files", "", "comma-separated members to scan (default: all)")
	flag.StringVar(&o.format, "format", "", "dump: json|pb, scan: yaml|json")
	flag.StringVar(&o.sep, "sep", "", "field separator (overrides config)")
	flag.StringVar(&o.metricsAddr, "metrics", "", "serve /metrics and /api/health on this address (overrides config)")
	flag.BoolVar(&o.wait, "wait", false, "keep serving metrics until SIGINT/SIGTERM")
	flag.BoolVar(&o.skipHeader, "skip-header", false, "dump: omit the first record")
	flag.Parse()

	os.Exit(run(o, os.Stdout, os.Stderr))
}

func run(o options, stdout, stderr io.Writer) int {
	if err := loadConfig(o.configPath); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	logger, err := internal.NewLogger(config.Config.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "logging: %v\n", err)
		return 2
	}
	defer logger.Sync()

	feedCfg, err := resolveFeed(o)
	if err != nil {
		logger.Error("no feed to read", zap.Error(err))
		return 2
	}
	readerCfg := config.ReaderFor(feedCfg)
	if o.sep != "" {
		readerCfg.Separator = o.sep
	}
	readerOpts, err := readerOptions(readerCfg)
	if err != nil {
		logger.Error("invalid reader configuration", zap.Error(err))
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var collector *metrics.Collector
	addr := config.Config.Metrics.Addr
	if o.metricsAddr != "" {
		addr = o.metricsAddr
	}
	if addr != "" {
		collector = metrics.New()
		srv := startServer(addr, collector, logger)
		defer shutdownServer(srv, logger)
	}

	feed, err := gtfs.Open(feedCfg.Path)
	if err != nil {
		logger.Error("opening feed", zap.String("path", feedCfg.Path), zap.Error(err))
		return 1
	}
	defer feed.Close()

	switch o.mode {
	case "scan":
		files := feedCfg.Files
		if o.files != "" {
			files = splitList(o.files)
		}
		err = scan(ctx, feed, gtfs.ScanOptions{
			Reader:      readerOpts,
			Files:       files,
			Concurrency: config.Config.Scan.Concurrency,
			MaxFailures: config.Config.Scan.MaxFailures,
			Metrics:     collector,
			Logger:      logger,
		}, o.format, stdout)
	case "dump":
		err = dump(feed, o.file, readerOpts, o.format, o.skipHeader, stdout, logger)
	default:
		err = fmt.Errorf("unknown mode %q", o.mode)
	}
	if err != nil {
		logger.Error("run failed", zap.String("mode", o.mode), zap.Error(err))
		return 1
	}

	if o.wait && addr != "" {
		logger.Info("waiting for shutdown signal", zap.String("metrics", addr))
		<-ctx.Done()
	}
	return 0
}

func loadConfig(path string) error {
	if path != "" {
		return config.LoadFromFile(path)
	}
	if err := config.LoadAppConfig(); err != nil {
		if os.IsNotExist(err) {
			config.Config = config.Default()
			return nil
		}
		return err
	}
	return nil
}

func resolveFeed(o options) (config.Feed, error) {
	if o.path != "" {
		return config.Feed{Name: "cli", Path: o.path}, nil
	}
	return config.SelectFeed(o.feedName)
}

func readerOptions(cfg config.ReaderConfig) (csv.ReaderOptions, error) {
	pre, err := preprocess.ByName(cfg.Preprocess, cfg.Charset)
	if err != nil {
		return csv.ReaderOptions{}, err
	}
	return csv.ReaderOptions{
		Separator:   cfg.SeparatorRune(),
		Preprocess:  pre,
		ReuseRecord: cfg.ReuseRecord,
	}, nil
}

func scan(ctx context.Context, feed *gtfs.Feed, opts gtfs.ScanOptions, format string, out io.Writer) error {
	report, err := gtfs.Scan(ctx, feed, opts)
	if err != nil {
		return err
	}
	opts.Logger.Info("scan finished",
		zap.String("path", report.Path),
		zap.Int("files", len(report.Files)),
		zap.Int("records", report.Records()),
		zap.Int("failures", report.Failures()))
	switch format {
	case "", "yaml":
		return formatter.WriteReportYAML(out, report)
	case "json":
		return formatter.WriteReportJSON(out, report)
	}
	return fmt.Errorf("%w: %q", formatter.ErrUnknownFormat, format)
}

func dump(feed *gtfs.Feed, file string, opts csv.ReaderOptions, format string, skipHeader bool, out io.Writer, logger *zap.Logger) error {
	if file == "" {
		files := feed.Files()
		if len(files) != 1 {
			return fmt.Errorf("-file is required, feed has %d files", len(files))
		}
		file = files[0]
	}
	if format == "" {
		format = "json"
	}
	w, err := formatter.NewRecordWriter(format, out)
	if err != nil {
		return err
	}
	r, err := feed.Reader(file, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	for rec, err := range r.All() {
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return err
			}
			logger.Warn("skipping line", zap.String("file", file), zap.Int("line", r.Line()), zap.Error(err))
			continue
		}
		if skipHeader && r.Line() == 1 {
			continue
		}
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
	}
	return w.Flush()
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
