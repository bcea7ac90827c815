package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"options-contracts-api/internal/models"
)

var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "List contracts of an underlying expiring within a window",
	Long: `Contracts fetches the option chain snapshot of an underlying and prints the
contracts expiring between today and today plus --days-forward, sorted by
expiration date.`,
	Args: cobra.NoArgs,
	RunE: runContracts,
}

func init() {
	contractsCmd.Flags().String("limit", "", "maximum number of contracts, 1-250 (env DEFAULT_LIMIT)")
	contractsCmd.Flags().String("days-forward", "", "expiration window in days (env DEFAULT_DAYS_FORWARD)")
	contractsCmd.Flags().String("type", "", "contract type, call or put (env DEFAULT_CONTRACT_TYPE)")

	_ = viper.BindPFlag("DEFAULT_LIMIT", contractsCmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("DEFAULT_DAYS_FORWARD", contractsCmd.Flags().Lookup("days-forward"))
	_ = viper.BindPFlag("DEFAULT_CONTRACT_TYPE", contractsCmd.Flags().Lookup("type"))

	rootCmd.AddCommand(contractsCmd)
}

func runContracts(cmd *cobra.Command, args []string) error {
	container, err := newContainer()
	if err != nil {
		return err
	}
	defer container.Close()

	params := models.QueryParams{
		TickerSymbol: viper.GetString("DEFAULT_TICKER"),
		APIKey:       viper.GetString("POLYGON_API_KEY"),
		Limit:        viper.GetString("DEFAULT_LIMIT"),
		DaysForward:  viper.GetString("DEFAULT_DAYS_FORWARD"),
		ContractType: viper.GetString("DEFAULT_CONTRACT_TYPE"),
	}

	query, err := models.NewOptionQuery(params, container.OptionsService.Defaults())
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	resp, err := container.OptionsService.ListContracts(ctx, query)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), resp)
}
