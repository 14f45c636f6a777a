package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"refurb-tracker/pkg/service"
)

func tokenCommand(cli *cliContext) *cobra.Command {
	var (
		operatorID uint64
		role       string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Выпустить bearer-токен для скриптов",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if operatorID == 0 {
				return fmt.Errorf("не указан --operator")
			}
			if role != service.RoleAdmin && role != service.RoleTechnician {
				return fmt.Errorf("неизвестная роль %q", role)
			}
			jwtSvc := service.NewJWTService(cli.cfg.JWT.SecretKey, cli.cfg.JWT.TokenTTL)
			token, err := jwtSvc.GenerateToken(operatorID, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&operatorID, "operator", 0, "ID оператора")
	cmd.Flags().StringVar(&role, "role", service.RoleTechnician, "роль: admin или technician")
	return cmd
}
