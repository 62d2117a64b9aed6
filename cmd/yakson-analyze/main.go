package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/di"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run analyzes each reference from the arguments, an input file, or stdin,
// and prints one JSON result per line.
func run(flags *di.CLIFlags, logger *zap.Logger, service *core.AnalysisService) error {
	defer logger.Sync()

	inputs, err := collectInputs(flags)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input: pass a reference as an argument, via -file, or on stdin")
	}

	enc := json.NewEncoder(os.Stdout)
	ctx := context.Background()

	for _, input := range inputs {
		result, err := service.Analyze(ctx, input, flags.Lang)
		if err != nil {
			logger.Error("Analysis failed", zap.String("input", input), zap.Error(err))
			continue
		}
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}
	return nil
}

// collectInputs gathers references from arguments, then an input file, then
// stdin, one per line.
func collectInputs(flags *di.CLIFlags) ([]string, error) {
	if args := flag.Args(); len(args) > 0 {
		return args, nil
	}

	var reader *bufio.Scanner
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()
		reader = bufio.NewScanner(file)
	} else {
		reader = bufio.NewScanner(os.Stdin)
	}

	var inputs []string
	for reader.Scan() {
		line := strings.TrimSpace(reader.Text())
		if line != "" {
			inputs = append(inputs, line)
		}
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return inputs, nil
}
