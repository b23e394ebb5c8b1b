package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"scripture-tui/internal/settings"
)

func newVersionsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List the versions offered by the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.load(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			versions, err := flags.client(e, settings.Server).Versions(cmd.Context())
			if err != nil {
				return err
			}

			bold := color.New(color.Bold).SprintFunc()
			table := uitable.New()
			table.MaxColWidth = 60
			table.AddRow(bold("ID"), bold("ABBREVIATION"), bold("NAME"))
			for _, v := range versions {
				id := fmt.Sprint(v.ID)
				if v.ID == e.cfg.VersionID {
					id = color.GreenString("%d*", v.ID)
				}
				table.AddRow(id, v.Abbreviation, v.Name)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}
