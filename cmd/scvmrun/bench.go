package main

import (
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	wasmvm "github.com/empower1/wasmvm"
	"github.com/empower1/wasmvm/internal/mockhost"
)

// newBenchCmd fans N concurrent calls out against one shared ledger. The
// runtime itself adds no synchronization around an Interface; each
// concurrent call gets its own Host, but every Host talks to the same
// boltdb-backed Ledger, so this is also a sanity check that the embedder's
// serialization of shared state (the ledger's own mutex/boltdb writer
// lock) is enough on its own.
func newBenchCmd(logger *zap.SugaredLogger) *cobra.Command {
	var (
		ledgerPath string
		address    string
		gasLimit   uint64
		concurrent int
	)

	cmd := &cobra.Command{
		Use:   "bench <module.wasm>",
		Short: "Run a module's main export N times concurrently against one shared ledger.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moduleBytes, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read module: %w", err)
			}

			ledger, err := mockhost.OpenLedger(ledgerPath, clock.New(), mockhost.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			defer ledger.Close()

			if err := ledger.Seed(address, moduleBytes, 0); err != nil {
				return fmt.Errorf("seed ledger: %w", err)
			}

			var g errgroup.Group
			for i := 0; i < concurrent; i++ {
				i := i
				g.Go(func() error {
					host := mockhost.NewHost(ledger, address, 0)
					remaining, err := wasmvm.RunMain(moduleBytes, gasLimit, host)
					if err != nil {
						return fmt.Errorf("invocation %d: %w", i, err)
					}
					logger.Infow("invocation finished", "index", i, "remaining_gas", remaining)
					return nil
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&ledgerPath, "ledger", "scvmrun-bench.db", "path to the mockhost ledger file")
	cmd.Flags().StringVar(&address, "address", "SC1", "address the module is deployed under")
	cmd.Flags().Uint64Var(&gasLimit, "gas", 100_000, "gas limit per call")
	cmd.Flags().IntVar(&concurrent, "concurrency", 8, "number of concurrent invocations")

	return cmd
}
