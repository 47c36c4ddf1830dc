package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/openosrs/launchcfg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTokensCmd(v *viper.Viper) *cobra.Command {
	var used bool
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Print the tokens templates are rendered with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newResolver(cmd, v, false)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if used {
				templates, err := r.Templates()
				if err != nil {
					return err
				}
				for _, t := range templates {
					names, err := launchcfg.Placeholders(t)
					if err != nil {
						return err
					}
					fmt.Fprintf(tw, "%s\t%s\n", t.Source(), strings.Join(names, " "))
				}
				return tw.Flush()
			}

			store, err := r.Tokens()
			if err != nil {
				return err
			}
			for _, name := range store.Names() {
				val, _ := store.Recall(name)
				fmt.Fprintf(tw, "%s\t%s\n", name, val)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&used, "used", false, "list the tokens each template references")
	return cmd
}
