package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "tla",
	Short: "Command line client for the tally ledger service",
	Long: `tla talks to a running tally ledger backend: maintain the chart of
accounts, post journal entries, import raw transactions, and reconcile
them against the ledger.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("base-url", "http://localhost:8080", "base URL of the ledger service")
	rootCmd.PersistentFlags().String("token", "", "service token for authenticated deployments")

	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	viper.SetEnvPrefix("TLA")
	viper.AutomaticEnv()

	rootCmd.AddCommand(accountsCmd())
	rootCmd.AddCommand(ledgerCmd())
	rootCmd.AddCommand(rawCmd())
	rootCmd.AddCommand(reconcileCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
