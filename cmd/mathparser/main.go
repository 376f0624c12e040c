package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/karupanerura/go-mathparser/internal/catalog"
	"github.com/karupanerura/go-mathparser/internal/defaults"
	"github.com/karupanerura/go-mathparser/internal/expression"
	"github.com/karupanerura/go-mathparser/internal/server"
	"github.com/karupanerura/go-mathparser/internal/types"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Option struct {
	Expressions    []string      `short:"e" long:"expression" description:"[OPTIONAL] Expression to convert (repeatable)"`
	Functions      string        `short:"f" long:"functions" env:"MATHPARSER_FUNCTIONS" description:"[OPTIONAL] Function catalog file (.json, .yaml or .yml)"`
	NoDefaults     bool          `long:"no-defaults" description:"[OPTIONAL] Do not register the builtin math functions"`
	Format         string        `long:"format" choice:"json" choice:"text" default:"json" description:"[OPTIONAL] Output format"`
	Tokens         bool          `long:"tokens" description:"[OPTIONAL] Print the infix tokens too (json format only)"`
	Listen         string        `short:"l" long:"listen" env:"MATHPARSER_LISTEN" description:"[OPTIONAL] Listen host and port to serve the HTTP API"`
	ReloadInterval time.Duration `long:"reload-interval" default:"5s" description:"[OPTIONAL] Interval to reload the function catalog file in server mode"`
	LogLevel       string        `long:"log-level" env:"MATHPARSER_LOG_LEVEL" default:"info" description:"[OPTIONAL] Log level (debug, info, warn, error)"`
	Debug          bool          `long:"debug" description:"[OPTIONAL] Dump lexemes and tokens of each expression"`
	Args           struct {
		Expressions []string `positional-arg-name:"expression"`
	} `positional-args:"yes"`
}

type result struct {
	Source  string             `json:"source"`
	Infix   []expression.Token `json:"infix,omitempty"`
	Postfix []expression.Token `json:"postfix,omitempty"`
	Error   any                `json:"error,omitempty"`

	err error
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	_, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		} else {
			parser.WriteHelp(stderr)
			return 1
		}
	}

	logger := newLogger(stderr, opt.LogLevel)
	if opt.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var loaders []catalog.FunctionLoader
	if !opt.NoDefaults {
		loaders = append(loaders, defaults.Functions)
	}
	if opt.Functions != "" {
		loaders = append(loaders, catalog.FileLoader(opt.Functions))
	}
	loader := catalog.Merge(loaders...)

	// server mode
	if opt.Listen != "" {
		if len(opt.Expressions) != 0 || len(opt.Args.Expressions) != 0 {
			parser.WriteHelp(stderr)
			return 1
		}

		var reloadInterval time.Duration
		if opt.Functions != "" {
			reloadInterval = opt.ReloadInterval
		}
		err = serve(ctx, opt.Listen, loader, server.Option{Logger: logger, ReloadInterval: reloadInterval}, logger)
		if err != nil {
			logger.Error().Err(err).Msg("failed to serve")
			return 1
		}
		return 0
	}

	repository, err := catalog.NewFunctionRepository(loader)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load functions")
		return 1
	}
	logger.Debug().Int("functions", repository.Len()).Msg("functions loaded")

	sources := append(append([]string(nil), opt.Expressions...), opt.Args.Expressions...)
	if len(sources) == 0 {
		sources, err = readLines(stdin)
		if err != nil {
			logger.Error().Err(err).Msg("failed to read expressions")
			return 1
		}
	}

	parseExpr := expression.ParseExpr
	if opt.Debug {
		debugLogger := logger.With().Str("component", "expression").Logger()
		parseExpr = func(source string, functions expression.FunctionCatalog) (*expression.Expr, error) {
			return expression.ParseExprWithLogger(source, functions, debugLogger)
		}
	}

	results, err := convertAll(ctx, sources, parseExpr, repository)
	if err != nil {
		logger.Error().Err(err).Msg("failed to convert expressions")
		return 1
	}

	status := 0
	for _, r := range results {
		if r.err != nil {
			status = 1
			logger.Debug().Err(r.err).Str("source", r.Source).Msg("conversion failed")
		}
		if !opt.Tokens {
			r.Infix = nil
		}
	}

	switch opt.Format {
	case "text":
		err = dumpText(stdout, results)
	default:
		err = dumpJSON(stdout, results)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to dump results")
		return 1
	}
	return status
}

func newLogger(w io.Writer, logLevel string) zerolog.Logger {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		With().Timestamp().Str("service", "mathparser").Logger().
		Level(level)
}

type parseExprFunc func(string, expression.FunctionCatalog) (*expression.Expr, error)

// convertAll converts every source concurrently. Typed failures are kept per
// result; any other failure aborts the whole batch.
func convertAll(ctx context.Context, sources []string, parseExpr parseExprFunc, functions expression.FunctionCatalog) ([]*result, error) {
	results := make([]*result, len(sources))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, source := range sources {
		i, source := i, source
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			expr, err := parseExpr(source, functions)
			if err != nil {
				var exception types.Exception
				if !errors.As(err, &exception) {
					return fmt.Errorf("%q: %w", source, err)
				}
				results[i] = &result{Source: source, Error: exception.Exception(), err: err}
				return nil
			}

			results[i] = &result{Source: source, Infix: expr.Infix, Postfix: expr.Postfix}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner.Scan: %w", err)
	}
	return lines, nil
}

func serve(ctx context.Context, listen string, loader catalog.FunctionLoader, opt server.Option, logger zerolog.Logger) error {
	handler, err := server.NewHTTPHandler(ctx, loader, opt)
	if err != nil {
		return err
	}

	srv := http.Server{
		Handler: handler,
		Addr:    listen,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown")
		}
	}()

	logger.Info().Str("listen", listen).Msg("listen HTTP")
	if err := srv.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

func dumpText(w io.Writer, results []*result) error {
	for _, r := range results {
		var line string
		if r.err != nil {
			line = "ERROR: " + r.err.Error()
		} else {
			line = expression.RenderTokens(r.Postfix)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("io.WriteString: %w", err)
		}
	}
	return nil
}

func dumpJSON(w io.Writer, v any) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if isatty.IsTerminal(f.Fd()) {
			opts = append(opts, json.Colorize(json.DefaultColorScheme))
		}
	}

	b, err := json.MarshalIndentWithOption(v, "", "\t", opts...)
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
