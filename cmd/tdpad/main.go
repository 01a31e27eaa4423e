// SPDX-License-Identifier: MIT

// Command tdpad runs the TDP anomaly detector.
//
// Usage:
//
//	tdpad [flags] '<json-args>'
//	tdpad [flags] -config args.yaml
//
// The JSON object follows the TimeEval contract: dataInput, dataOutput,
// executionType ("train" or "execute") and customParameters.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/katalvlaran/tdpad"
	"github.com/katalvlaran/tdpad/config"
	"github.com/katalvlaran/tdpad/dataio"
)

// Environment variables.
const (
	envLogLevel      = "TDPAD_LOG_LEVEL"
	envS3Endpoint    = "TDPAD_S3_ENDPOINT"
	envS3Region      = "TDPAD_S3_REGION"
	envS3PathStyle   = "TDPAD_S3_PATH_STYLE"
	envAWSAccessKey  = "AWS_ACCESS_KEY_ID"
	envAWSSecretKey  = "AWS_SECRET_ACCESS_KEY"
	defaultLogLevel  = "info"
	defaultS3Region  = "us-east-1"
	usageArgsMissing = "expected one JSON argument or -config"
)

var errUsage = errors.New("tdpad: usage")

func main() {
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// run parses args, builds the logger and store, and executes one invocation.
func run(ctx context.Context, argv []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("tdpad", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "YAML or JSON file with the invocation arguments")
		workers    = fs.Int("workers", 0, "evaluation workers (0 = GOMAXPROCS)")
		plotPath   = fs.String("plot", "", "save a score plot to this file (.png, .svg, .pdf)")
		logLevel   = fs.String("log-level", envOr(envLogLevel, defaultLogLevel), "debug, info, warn or error")
	)
	if err := fs.Parse(argv); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	level, err := parseLevel(*logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("run_id", uuid.NewString()))

	args, err := loadArgs(*configPath, fs.Args())
	if err != nil {
		return err
	}

	opts := []tdpad.Option{
		tdpad.WithLogger(logger),
		tdpad.WithWorkers(*workers),
		tdpad.WithPlot(*plotPath),
	}
	if dataio.IsRemote(args.DataInput) || dataio.IsRemote(args.DataOutput) {
		store, err := dataio.NewS3Store(ctx, s3ConfigFromEnv())
		if err != nil {
			return err
		}
		opts = append(opts, tdpad.WithStore(store))
	}

	logger.Info("starting",
		slog.String("executionType", args.ExecutionType),
		slog.String("input", args.DataInput),
		slog.String("output", args.DataOutput))

	return tdpad.Execute(ctx, args, opts...)
}

func loadArgs(configPath string, rest []string) (config.AlgorithmArgs, error) {
	switch {
	case configPath != "" && len(rest) == 0:
		return config.LoadFile(configPath)
	case configPath == "" && len(rest) == 1:
		return config.ParseJSON([]byte(rest[0]))
	default:
		return config.AlgorithmArgs{}, fmt.Errorf("%w: %s", errUsage, usageArgsMissing)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: log level %q: %w", errUsage, s, err)
	}

	return level, nil
}

func s3ConfigFromEnv() dataio.S3Config {
	pathStyle, _ := strconv.ParseBool(os.Getenv(envS3PathStyle))

	return dataio.S3Config{
		Region:          envOr(envS3Region, defaultS3Region),
		Endpoint:        os.Getenv(envS3Endpoint),
		AccessKeyID:     os.Getenv(envAWSAccessKey),
		SecretAccessKey: os.Getenv(envAWSSecretKey),
		UsePathStyle:    pathStyle,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
