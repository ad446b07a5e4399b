package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/soypat/boltpat/loadtable"
	"github.com/soypat/boltpat/plotdata"
	"github.com/soypat/boltpat/render"
	"github.com/spf13/cobra"
)

func (c *CLI) plotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plot <job.toml>",
		Short: "Plot per-bolt loads and write the table and report",
		Long: `Reads the bolt pattern and the per-bolt load table named in the job file,
prepares the shared color scale, shear arrows and axis ranges, and writes
the configured plot, table workbook and PDF report.

When every shear magnitude is zero no arrows can be scaled. The plot then
shows the pattern only and the report leaves out the load table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.plot(cmd.Context(), a)
		},
	}
}

func (c *CLI) plot(ctx context.Context, a *analysis) error {
	out := a.job.Output
	var table *plotdata.Table
	if a.job.Loads.File != "" {
		t, err := c.prepare(a)
		switch {
		case isDegenerate(err):
			c.Logger.Warn("loads cannot be scaled, plotting pattern only", "err", err)
		case err != nil:
			return err
		default:
			table = &t
		}
	}

	if out.Plot != "" {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.writePlot(out.Plot, a, table); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		c.Logger.Info("wrote plot", "path", out.Plot)
	}
	if out.Table != "" && table != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeFile(out.Table, func(f *os.File) error { return loadtable.WriteXLSX(f, *table) }); err != nil {
			return fmt.Errorf("table: %w", err)
		}
		c.Logger.Info("wrote table", "path", out.Table)
	}
	if out.Report != "" {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.writeReport(out.Report, a, table); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		c.Logger.Info("wrote report", "path", out.Report)
	}
	return nil
}

func (c *CLI) prepare(a *analysis) (plotdata.Table, error) {
	f, err := os.Open(a.job.Loads.File)
	if err != nil {
		return plotdata.Table{}, err
	}
	defer f.Close()
	loads, err := loadtable.ReadXLSX(f, a.job.Loads.Sheet)
	if err != nil {
		return plotdata.Table{}, fmt.Errorf("%s: %w", a.job.Loads.File, err)
	}
	t, err := plotdata.Prepare(a.points, a.section.Centroid, loads)
	if err != nil {
		return plotdata.Table{}, err
	}
	c.Logger.Debug("prepared loads",
		"color", fmt.Sprintf("[%g, %g]", t.Color.Low, t.Color.High),
		"arrowScale", t.ArrowScale,
		"x", fmt.Sprintf("[%.4g, %.4g]", t.XRange.Min, t.XRange.Max),
		"y", fmt.Sprintf("[%.4g, %.4g]", t.YRange.Min, t.YRange.Max))
	return t, nil
}

func (c *CLI) writePlot(path string, a *analysis, table *plotdata.Table) error {
	return writeFile(path, func(f *os.File) error {
		pl, err := c.newPlot(f, path, a.job.Output)
		if err != nil {
			return err
		}
		return draw(pl, a, table)
	})
}

func (c *CLI) writeReport(path string, a *analysis, table *plotdata.Table) error {
	var img bytes.Buffer
	pl, err := c.newPlot(&img, "report.png", a.job.Output)
	if err != nil {
		return err
	}
	if err := draw(pl, a, table); err != nil {
		return err
	}
	rep := render.Report{
		Title:   a.job.Output.Title,
		Project: a.job.Output.Project,
		Date:    time.Now(),
		Points:  a.points,
		Section: a.section,
		Table:   table,
		Plot:    img.Bytes(),
	}
	return writeFile(path, func(f *os.File) error { return render.WriteReport(f, rep) })
}

// draw renders the load table, or the bare pattern when there is none.
func draw(pl *render.Plot, a *analysis, table *plotdata.Table) error {
	if table == nil {
		return pl.RenderPattern(a.points, a.section.Centroid)
	}
	return pl.RenderTable(*table)
}

// writeFile creates path and fills it with write. The file is removed if
// writing or closing fails.
func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
