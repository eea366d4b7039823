package hilbertviz

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chromy/hilbertviz/internal/core"
	_ "github.com/chromy/hilbertviz/internal/features"
	"github.com/chromy/hilbertviz/internal/logger"
	"github.com/chromy/hilbertviz/internal/schemas"
	"github.com/getsentry/sentry-go"
)

//go:embed static/*
//go:embed templates/*
var assetsFS embed.FS
var staticFS, _ = fs.Sub(assetsFS, "static")
var templatesFS, _ = fs.Sub(assetsFS, "templates")

func Usage() {
	fmt.Fprintf(os.Stderr, "hilbertviz <subcommand>\n\n")
	fmt.Fprintf(os.Stderr, "subcommands:\n")
	fmt.Fprintf(os.Stderr, "  serve     serve the http api\n")
	fmt.Fprintf(os.Stderr, "  dev       rebuild on change and proxy to serve\n")
	fmt.Fprintf(os.Stderr, "  index     print the curve index of a cell\n")
	fmt.Fprintf(os.Stderr, "  point     print the cell at a curve index\n")
	fmt.Fprintf(os.Stderr, "  offset    print the pixel centre of a cell\n")
	fmt.Fprintf(os.Stderr, "  deoffset  print the cell containing a pixel\n")
	fmt.Fprintf(os.Stderr, "  render    write the curve as a png\n")
	fmt.Fprintf(os.Stderr, "  schemas   print zod schemas of api responses\n")
	fmt.Fprintf(os.Stderr, "  assets    list embedded assets\n")
}

func Cmd() {
	if len(os.Args) < 2 {
		Usage()
		os.Exit(1)
	}

	logger.New(getEnv("HILBERTVIZ_LOG_LEVEL", "info"))

	initSentry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	serve := func(args []string) int {
		fs := flag.NewFlagSet("serve", flag.ExitOnError)
		port := fs.Uint("port", 8080, "port to listen on")
		memcached := fs.String("memcached", "", "memcached address, in-memory cache when empty")
		cacheItems := fs.Int("cache-items", 4096, "entries kept by the in-memory cache")
		maxOrder := fs.Uint("max-order", core.DefaultMaxOrder, "largest curve order served")
		if err := fs.Parse(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			return 1
		}
		if err := DoServe(ctx, ServeOptions{
			Port:          *port,
			MemcachedAddr: *memcached,
			CacheItems:    *cacheItems,
			MaxOrder:      uint16(min(*maxOrder, 1<<16-1)),
		}); err != nil {
			logger.Sugar.Errorf("serve: %v", err)
			return 1
		}
		return 0
	}

	assets := func(args []string) int {
		fs := flag.NewFlagSet("assets", flag.ExitOnError)
		if err := fs.Parse(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			return 1
		}
		DoAssets(ctx)
		return 0
	}

	dev := func(args []string) int {
		fs := flag.NewFlagSet("dev", flag.ExitOnError)
		port := fs.Uint("port", 8080, "port to listen on")
		memcached := fs.Bool("memcached", false, "start a local memcached for serve")
		if err := fs.Parse(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			return 1
		}
		if err := DoDev(ctx, *port, *memcached); err != nil {
			logger.Sugar.Errorf("dev: %v", err)
			return 1
		}
		return 0
	}

	schemasCmd := func(args []string) int {
		fs := flag.NewFlagSet("schemas", flag.ExitOnError)
		if err := fs.Parse(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			return 1
		}
		DoSchemas(ctx)
		return 0
	}

	main := func(args []string) int {
		cmd := args[1]
		subArgs := args[2:]
		switch cmd {
		case "serve":
			return serve(subArgs)
		case "assets":
			return assets(subArgs)
		case "dev":
			return dev(subArgs)
		case "schemas":
			return schemasCmd(subArgs)
		case "index", "point", "offset", "deoffset", "render":
			return curveCmd(os.Stdout, cmd, subArgs)
		default:
			fmt.Fprintf(os.Stderr, "Unknown subcommand '%s'\n", cmd)
			Usage()
			return 1
		}
	}

	code := main(os.Args)

	stop()
	sentry.Flush(2 * time.Second)
	logger.OnExit()
	os.Exit(code)
}

func DoAssets(ctx context.Context) {
	fs.WalkDir(assetsFS, ".", func(path string, d fs.DirEntry, err error) error {
		fmt.Println(path)
		return nil
	})
}

func DoSchemas(ctx context.Context) {
	fmt.Printf("%s", schemas.ToZodSchema())
}

func initSentry() {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		logger.Sugar.Debug("SENTRY_DSN not set, Sentry disabled")
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      GetEnvironment(),
		Release:          core.GetVersion(),
		TracesSampleRate: 1.0,
		Debug:            os.Getenv("SENTRY_DEBUG") == "true",
	})
	if err != nil {
		logger.Sugar.Warnf("sentry.Init: %s", err)
	} else {
		logger.Sugar.Info("Sentry initialized")
	}
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func GetEnvironment() string {
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		return env
	}
	if env := os.Getenv("GO_ENV"); env != "" {
		return env
	}
	return "development"
}
