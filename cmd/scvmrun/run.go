package main

import (
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	wasmvm "github.com/empower1/wasmvm"
	"github.com/empower1/wasmvm/internal/mockhost"
)

func newRunCmd(logger *zap.SugaredLogger) *cobra.Command {
	var (
		ledgerPath string
		address    string
		gasLimit   uint64
		function   string
		param      string
		coins      uint64
	)

	cmd := &cobra.Command{
		Use:   "run <module.wasm>",
		Short: "Run a compiled module's main export, or a named function with an argument.",
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
			host := mockhost.NewHost(ledger, address, coins)

			logger.Infow("running module", "address", address, "gas_limit", gasLimit, "function", function)

			remaining, err := runModule(moduleBytes, gasLimit, function, param, host)
			if err != nil {
				return fmt.Errorf("execution failed: %w", err)
			}
			fmt.Printf("remaining gas: %d\n", remaining)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerPath, "ledger", "scvmrun.db", "path to the mockhost ledger file")
	cmd.Flags().StringVar(&address, "address", "SC1", "address the module is deployed under")
	cmd.Flags().Uint64Var(&gasLimit, "gas", 100_000, "gas limit for the call")
	cmd.Flags().StringVar(&function, "function", wasmvm.MainEntryPoint, "exported function to run")
	cmd.Flags().StringVar(&param, "param", "", "argument passed to --function (ignored for main)")
	cmd.Flags().Uint64Var(&coins, "coins", 0, "coins attached to the call")

	return cmd
}

func runModule(moduleBytes []byte, gasLimit uint64, function, param string, iface wasmvm.Interface) (uint64, error) {
	if function == wasmvm.MainEntryPoint {
		return wasmvm.RunMain(moduleBytes, gasLimit, iface)
	}
	return wasmvm.RunFunction(moduleBytes, gasLimit, function, param, iface)
}
