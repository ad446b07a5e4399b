// Package cli implements the boltpat command-line interface.
//
// Commands:
//   - props: compute the centroid and second moments of a bolt pattern
//   - plot: prepare per-bolt loads and write the plot, table and report
//
// Both commands read a TOML job file (see package config). All commands
// support --verbose (-v) for debug-level logging.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/soypat/boltpat"
	"github.com/soypat/boltpat/internal/config"
	"github.com/soypat/boltpat/pattern"
	"github.com/soypat/boltpat/render"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot/vg"
)

const appName = "boltpat"

// CLI holds shared state for all commands.
type CLI struct {
	Logger  *log.Logger
	verbose bool
}

// New returns a CLI logging to w. Commands log at info level unless
// --verbose is given.
func New(w io.Writer) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Level:           log.InfoLevel,
		}),
	}
}

// RootCommand returns the boltpat command with its subcommands. Commands stop
// between output files once the command context is done.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Bolt pattern centroid, moments and load plots",
		Long:         `boltpat computes the centroid and second moments of area of a bolt pattern and plots per-bolt axial and shear loads about it.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug details")
	root.AddCommand(c.propsCommand(), c.plotCommand())
	return root
}

// analysis is a built pattern together with its section properties.
type analysis struct {
	job     config.Job
	points  []r2.Vec
	section boltpat.Section
}

// analyze loads the job at path, builds its pattern and computes the full
// section properties. A configured preview is written only once the pattern
// has been built.
func (c *CLI) analyze(ctx context.Context, path string) (*analysis, error) {
	job, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded job", "path", path, "kind", job.Pattern.Kind)
	areas := job.Pattern.AreaWeights()
	pivot, err := job.Pattern.PivotPoint()
	if err != nil {
		return nil, err
	}

	var (
		opts    []pattern.Option
		preview bytes.Buffer
	)
	if job.Output.Preview != "" {
		pl, err := c.newPlot(&preview, job.Output.Preview, job.Output)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pattern.WithPreview(pl, areas, pivot))
	}
	pts, err := job.Pattern.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("build %s pattern: %w", job.Pattern.Kind, err)
	}
	if job.Output.Preview != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := writeFile(job.Output.Preview, func(f *os.File) error {
			_, err := preview.WriteTo(f)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("preview: %w", err)
		}
		c.Logger.Info("wrote pattern preview", "path", job.Output.Preview)
	}
	sec, err := boltpat.Properties(pts, areas, pivot)
	if err != nil {
		return nil, fmt.Errorf("section properties: %w", err)
	}
	c.Logger.Info("section properties",
		"bolts", len(pts),
		"centroid", fmt.Sprintf("(%.4g, %.4g)", sec.Centroid.X, sec.Centroid.Y),
		"pivot", pivot != nil,
		"Icx", sec.Icx, "Icy", sec.Icy, "Icp", sec.Icp)
	return &analysis{job: job, points: pts, section: sec}, nil
}

func (c *CLI) newPlot(w io.Writer, path string, out config.OutputConfig) (*render.Plot, error) {
	format, err := render.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	pl := render.NewPlot(w, format, vg.Length(out.WidthMM)*vg.Millimeter, vg.Length(out.HeightMM)*vg.Millimeter)
	pl.Supersample = out.Supersample
	pl.Title = out.Title
	return pl, nil
}

// isDegenerate reports whether err is a DegenerateScaleError.
func isDegenerate(err error) bool {
	var d *boltpat.DegenerateScaleError
	return errors.As(err, &d)
}
