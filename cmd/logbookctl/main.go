// Command logbookctl extracts flight records from a single logbook page
// image, read from disk or from S3, and prints them as JSON, CSV or XLSX.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"logbookocr/internal/app"
	"logbookocr/internal/config"
	"logbookocr/internal/export"
	"logbookocr/internal/logger"
	"logbookocr/internal/port"
	"logbookocr/internal/service"
	s3storage "logbookocr/internal/storage/s3"
)

const usage = `usage: logbookctl [flags] <image-path | s3://bucket/key>

flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

type cliOptions struct {
	provider string
	format   string
	out      string
	analysis string
	source   string
}

func parseArgs(args []string, stderr io.Writer) (*cliOptions, error) {
	opts := &cliOptions{}
	fs := pflag.NewFlagSet("logbookctl", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.provider, "provider", "p", "", "extraction strategy: AWS, GEMINI or HYBRID (default from config)")
	fs.StringVarP(&opts.format, "format", "f", "json", "output format: json, csv or xlsx")
	fs.StringVarP(&opts.out, "out", "o", "", "write output to this file instead of stdout")
	fs.StringVar(&opts.analysis, "analysis", "", "replay a saved Textract AnalyzeDocument JSON instead of calling Textract")
	fs.Usage = func() {
		_, _ = fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("exactly one image path or s3:// URI is required")
	}
	opts.source = fs.Arg(0)
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	pipeline, err := app.New(cfg, app.Options{Provider: opts.provider, AnalysisPath: opts.analysis}, zlog)
	if err != nil {
		return err
	}
	defer func() { _ = pipeline.Close() }()

	var downloader port.ObjectDownloader
	if _, _, ok := s3storage.ParseURI(opts.source); ok {
		d, err := s3storage.NewDownloader(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		downloader = d
	}

	return extract(ctx, pipeline.Service, downloader, opts, format, cfg.OCR.MaxFileSizeBytes(), stdout, zlog)
}

func extract(
	ctx context.Context,
	svc service.ExtractionService,
	downloader port.ObjectDownloader,
	opts *cliOptions,
	format export.Format,
	maxBytes int64,
	stdout io.Writer,
	zlog *zap.Logger,
) error {
	data, err := readSource(ctx, downloader, opts.source)
	if err != nil {
		return err
	}

	contentType, err := service.ValidateImage(data, "", maxBytes)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.source, err)
	}

	result, err := svc.Process(ctx, service.ProcessInput{Image: data, ContentType: contentType})
	if err != nil {
		return err
	}
	zlog.Info(result.Message, zap.String("source", opts.source), zap.Int("records", len(result.Records)))

	w := stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	if err := export.Write(w, format, result); err != nil {
		return fmt.Errorf("writing %s output: %w", format, err)
	}
	return nil
}

func readSource(ctx context.Context, downloader port.ObjectDownloader, source string) ([]byte, error) {
	if bucket, key, ok := s3storage.ParseURI(source); ok {
		if downloader == nil {
			return nil, errors.New("no S3 client configured")
		}
		return downloader.Download(ctx, bucket, key)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return data, nil
}
