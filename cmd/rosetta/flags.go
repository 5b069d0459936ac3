package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/signalpost/rosetta/internal/logger"
	"github.com/signalpost/rosetta/internal/model"
	"github.com/signalpost/rosetta/internal/translator"
)

var (
	modelDir       string
	modelsPath     string
	tokenizerJSON  string
	backendName    string
	backendURL     string
	functionName   string
	awsRegion      string
	requestRPS     float64
	maxRetries     int64
	requestTimeout time.Duration
	logLevel       string
	logFormat      string
	debug          bool
)

func modelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "model",
			Aliases:     []string{"m"},
			Usage:       "path to the model directory",
			Destination: &modelDir,
		},
		&cli.StringFlag{
			Name:        "models-path",
			Aliases:     []string{"path"},
			Usage:       "directory containing model directories",
			Destination: &modelsPath,
		},
		&cli.StringFlag{
			Name:        "tokenizer-json",
			Usage:       "override path to tokenizer.json",
			Destination: &tokenizerJSON,
		},
	}
}

func backendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend",
			Usage:       "model backend (http, lambda)",
			Value:       "http",
			Destination: &backendName,
		},
		&cli.StringFlag{
			Name:        "backend-url",
			Aliases:     []string{"url"},
			Usage:       "base url of the http backend",
			Value:       "http://127.0.0.1:8601",
			Destination: &backendURL,
		},
		&cli.StringFlag{
			Name:        "function",
			Usage:       "function name for the lambda backend",
			Destination: &functionName,
		},
		&cli.StringFlag{
			Name:        "region",
			Usage:       "aws region override for the lambda backend",
			Destination: &awsRegion,
		},
		&cli.Float64Flag{
			Name:        "rps",
			Usage:       "max backend requests per second (0 = unlimited)",
			Destination: &requestRPS,
		},
		&cli.Int64Flag{
			Name:        "max-retries",
			Usage:       "retries for transient backend failures",
			Value:       2,
			Destination: &maxRetries,
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "per call backend timeout",
			Value:       2 * time.Minute,
			Destination: &requestTimeout,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func buildLogger() logger.Logger {
	level := logger.ParseLevel(logLevel)
	if debug {
		level = slog.LevelDebug
	}
	switch logFormat {
	case "json":
		return logger.JSON(os.Stderr, level)
	case "text":
		return logger.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	default:
		return logger.Pretty(os.Stderr, level)
	}
}

func buildModelConfig() model.Config {
	return model.Config{
		Backend:      backendName,
		BaseURL:      backendURL,
		FunctionName: functionName,
		Region:       awsRegion,
		Timeout:      requestTimeout,
		MaxRetries:   int(maxRetries),
		RPS:          requestRPS,
	}
}

// loadService resolves the model directory and builds the translation
// service against the configured backend.
func loadService(ctx context.Context, log logger.Logger) (*translator.Service, error) {
	var dir string
	if tokenizerJSON == "" {
		var err error
		dir, err = resolveModelDir(modelDir, modelsPath, os.Stdin, os.Stderr)
		if err != nil {
			return nil, err
		}
	}
	loader := translator.Loader{
		TokenizerJSONPath: tokenizerJSON,
		Model:             buildModelConfig(),
	}
	return loader.Load(ctx, dir, log)
}
