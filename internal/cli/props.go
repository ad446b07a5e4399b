package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) propsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "props <job.toml>",
		Short: "Print the centroid, second moments and bolt offsets of a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeProps(cmd.OutOrStdout(), a)
		},
	}
}

func writeProps(w io.Writer, a *analysis) error {
	sec := a.section
	fmt.Fprintf(w, "Centroid: (%.6g, %.6g)\n", sec.Centroid.X, sec.Centroid.Y)
	fmt.Fprintf(w, "Icx: %.6g\nIcy: %.6g\nIcp: %.6g\n\n", sec.Icx, sec.Icy, sec.Icp)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "bolt\tx\ty\trcx\trcy\trcxy\t")
	for i, p := range a.points {
		rc := sec.Rc[i]
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t\n", i, p.X, p.Y, rc.X, rc.Y, sec.Rcxy[i])
	}
	return tw.Flush()
}
