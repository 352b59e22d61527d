// Command translator lowers a mnemonic source file into a JSON code image.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"csa-vm/machine"
)

var debug bool

func main() {
	root := &cobra.Command{
		Use:   "translator <source> <target>",
		Short: "Assemble a mnemonic source file into a JSON code image",
		Args:  cobra.ExactArgs(2),
		RunE:  run,
	}
	root.Flags().BoolVar(&debug, "debug", false, "attach a development logger")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := newLogger(debug)
	defer log.Sync()

	source, target := args[0], args[1]

	text, err := os.ReadFile(source)
	if err != nil {
		log.Errorw("reading source", "error", err)
		return err
	}

	code, err := machine.Translate(string(text))
	if err != nil {
		log.Errorw("translation failed", "error", err)
		return err
	}

	image, err := machine.EncodeImage(code)
	if err != nil {
		log.Errorw("encoding image", "error", err)
		return err
	}

	if err := os.WriteFile(target, image, 0o644); err != nil {
		log.Errorw("writing target", "error", err)
		return err
	}

	fmt.Printf("instructions: %d\n", len(code))
	return nil
}

func newLogger(debug bool) *zap.SugaredLogger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}
