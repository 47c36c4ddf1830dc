package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRenderCmd(v *viper.Viper) *cobra.Command {
	var (
		backup bool
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render all templates and write them to the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newResolver(cmd, v, backup)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if dryRun {
				artifacts, err := r.Resolve()
				if err != nil {
					return err
				}
				paths := make([]string, 0, len(artifacts))
				for p := range artifacts {
					paths = append(paths, p)
				}
				sort.Strings(paths)
				for _, p := range paths {
					fmt.Fprintf(out, "would write %s (%d bytes)\n", p, len(artifacts[p].Contents))
				}
				return nil
			}

			results, err := r.Run()
			if err != nil {
				return err
			}
			for _, res := range results {
				status := "unchanged"
				if res.DidRender {
					status = "wrote"
				}
				fmt.Fprintf(out, "%s %s\n", status, res.Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&backup, "backup", false, "keep a .bak copy of files being replaced")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "render without writing")
	return cmd
}
