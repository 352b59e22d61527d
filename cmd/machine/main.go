// Command machine runs a JSON code image against an input file, producing
// an output file, via the tick-accurate simulator in package machine.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"csa-vm/machine"
)

var debugLog bool

func main() {
	root := &cobra.Command{
		Use:   "machine <image> <input> <output> <mode>",
		Short: "Run a code image against an input file",
		Args:  cobra.ExactArgs(4),
		RunE:  run,
	}
	root.Flags().BoolVar(&debugLog, "debug", false, "attach a development logger (per-tick trace)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	imagePath, inputPath, outputPath, modeArg := args[0], args[1], args[2], args[3]

	log := newLogger(debugLog)
	defer log.Sync()

	mode, err := machine.ParseOutputMode(modeArg)
	if err != nil {
		log.Errorw("bad output mode", "error", err)
		return err
	}

	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		log.Errorw("reading image", "error", err)
		return err
	}
	code, err := machine.DecodeImage(imageBytes)
	if err != nil {
		log.Errorw("decoding image", "error", err)
		return err
	}

	input, err := machine.ReadInputFile(inputPath)
	if err != nil {
		log.Errorw("reading input", "error", err)
		return err
	}

	dp := machine.NewDataPath(code, machine.SizeForVars)
	io := machine.NewIOController(dp, input, mode)
	cu := machine.NewControlUnit(dp, io, log)

	// The collector is disabled for the duration of the run and the previous
	// setting is restored as soon as Run returns.
	prevGC := debug.SetGCPercent(-1)
	runErr := cu.Run()
	debug.SetGCPercent(prevGC)

	if runErr != nil {
		log.Errorw("runtime error", "error", runErr)
		return runErr
	}

	if err := io.Finish(outputPath); err != nil {
		log.Errorw("writing output", "error", err)
		return err
	}

	fmt.Printf("instructions_executed: %d ticks: %d\n", cu.InstructionsExecuted(), cu.Ticks())
	return nil
}

func newLogger(verbose bool) *zap.SugaredLogger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}
