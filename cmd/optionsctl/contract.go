package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"options-contracts-api/internal/models"
)

var contractCmd = &cobra.Command{
	Use:     "contract <option-ticker>",
	Short:   "Show the snapshot of a single contract",
	Example: `  optionsctl contract O:AAPL261120C00150000 --ticker AAPL`,
	Args:    cobra.ExactArgs(1),
	RunE:    runContract,
}

func init() {
	rootCmd.AddCommand(contractCmd)
}

func runContract(cmd *cobra.Command, args []string) error {
	container, err := newContainer()
	if err != nil {
		return err
	}
	defer container.Close()

	params := models.QueryParams{
		TickerSymbol: viper.GetString("DEFAULT_TICKER"),
		APIKey:       viper.GetString("POLYGON_API_KEY"),
		OptionTicker: args[0],
	}

	query, err := models.NewOptionQuery(params, container.OptionsService.Defaults())
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	contract, err := container.OptionsService.GetContract(ctx, query)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), models.ContractResponse{OptionContract: contract})
}
