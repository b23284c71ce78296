package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vugu/vgnav"
)

func newRoutesCmd(a *app) *cobra.Command {

	var asYAML bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the route table in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {

			rt, err := a.loadRoutes()
			if err != nil {
				return err
			}

			if asYAML {
				return vgnav.WriteRoutes(cmd.OutOrStdout(), rt.All())
			}

			for i, d := range rt.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", i+1, d.Pattern, d.ViewID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the normalized route configuration")

	return cmd
}
