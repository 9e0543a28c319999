package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pagoandino/capture-cli/pkg/bff"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Resolve reference codes against the BFF services",
	Long:  "Ad-hoc resolution of bank, account-type, and economic-activity labels to the codes used on the published payload.",
}

var lookupBankCmd = &cobra.Command{
	Use:   "bank <name>",
	Short: "Resolve a bank name to its code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cuenta := bff.NewCuentaClient(cfg.BFF.CuentaURL, cfg.BFF.CuentaToken)
		if err := cuenta.Load(ctx); err != nil {
			return err
		}
		code, ok := cuenta.BankCode(args[0])
		if !ok {
			return eris.Errorf("no bank matches %q", args[0])
		}
		fmt.Fprintf(os.Stdout, "%d\n", code)
		return nil
	},
}

var lookupAccountTypeCmd = &cobra.Command{
	Use:   "account-type <name>",
	Short: "Resolve an account type to its code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cuenta := bff.NewCuentaClient(cfg.BFF.CuentaURL, cfg.BFF.CuentaToken)
		if err := cuenta.Load(ctx); err != nil {
			return err
		}
		code, ok := cuenta.AccountTypeCode(args[0])
		if !ok {
			return eris.Errorf("no account type matches %q", args[0])
		}
		fmt.Fprintf(os.Stdout, "%d\n", code)
		return nil
	},
}

var lookupActivityCmd = &cobra.Command{
	Use:   "activity <name>",
	Short: "Resolve an economic activity to its code, giro, and MCC",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		comercio := bff.NewComercioClient(cfg.BFF.ComercioURL, cfg.BFF.ActivitiesPath, cfg.BFF.MCCPath, cfg.BFF.ComercioToken, cfg.BFF.FuzzyCutoff)
		if err := comercio.Load(ctx); err != nil {
			return err
		}
		code, ok := comercio.ActivityCode(args[0])
		if !ok {
			return eris.Errorf("no economic activity matches %q", args[0])
		}
		mcc, giro, err := comercio.GiroMCC(ctx, code)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "activity=%d giro=%d mcc=%d\n", code, giro, mcc)
		return nil
	},
}

func init() {
	lookupCmd.AddCommand(lookupBankCmd)
	lookupCmd.AddCommand(lookupAccountTypeCmd)
	lookupCmd.AddCommand(lookupActivityCmd)
	rootCmd.AddCommand(lookupCmd)
}
