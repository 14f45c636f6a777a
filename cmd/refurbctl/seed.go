package main

import (
	"github.com/spf13/cobra"

	"refurb-tracker/seeders"
)

func seedCommand(cli *cliContext) *cobra.Command {
	var withClients bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Наполнить базу операторами и демонстрационными клиентами",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := cli.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()
			return seeders.SeedAll(cmd.Context(), pool, withClients)
		},
	}
	cmd.Flags().BoolVar(&withClients, "clients", true, "добавить демонстрационных клиентов")
	return cmd
}
