// Command scvmrun is a harness for driving the runtime from the command
// line: load a compiled module, run it against a mockhost ledger, and
// print what came back.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	wasmvm "github.com/empower1/wasmvm"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scvmrun: failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()
	wasmvm.SetLogger(sugar)

	if _, err := maxprocs.Set(maxprocs.Logger(sugar.Infof)); err != nil {
		sugar.Warnw("failed to set GOMAXPROCS", "error", err)
	}

	if err := newRootCmd(sugar).Execute(); err != nil {
		sugar.Errorw("scvmrun failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *zap.SugaredLogger) *cobra.Command {
	root := &cobra.Command{
		Use:   "scvmrun",
		Short: "Run compiled WebAssembly smart contracts against a mock ledger.",
	}
	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newBenchCmd(logger))
	return root
}
