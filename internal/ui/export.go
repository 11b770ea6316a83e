package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskcal/internal/calendar"
	"github.com/javiermolinar/taskcal/internal/export"
	"github.com/javiermolinar/taskcal/internal/host"
)

// exportContainer is the id the export box is registered under.
const exportContainer = "export"

func (a *App) exportCmd() *cobra.Command {
	var date string
	var width, height, ratio float64

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export a month as PNG",
		Long: `Draw a month with its tasks into a PNG image.

The path defaults to the configured export path. Width and height are
in CSS pixels and the image is scaled by the pixel ratio.

Example:
  taskcal export october.png --date 2024-10-01`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.config.Export.Path
			if len(args) == 1 {
				path = args[0]
			}
			path, err := resolvePath(path)
			if err != nil {
				return err
			}

			n, err := a.exportMonth(path, date, width, height, ratio)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s with %s to %s\n",
				formatHeader(n.title), formatStats(plural(n.tasks, "task")), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Month to export (date key or natural language)")
	cmd.Flags().Float64Var(&width, "width", a.config.Export.Width, "Stage width in pixels")
	cmd.Flags().Float64Var(&height, "height", a.config.Export.Height, "Stage height in pixels")
	cmd.Flags().Float64Var(&ratio, "ratio", a.config.Export.PixelRatio, "Pixel ratio")
	return cmd
}

type exported struct {
	title string
	tasks int
}

// exportMonth renders the month of date at pixel metrics and writes it to path.
func (a *App) exportMonth(path, date string, width, height, ratio float64) (exported, error) {
	reg := host.NewRegistry()
	reg.Register(exportContainer, host.Fixed{W: width, H: height})

	c, err := a.monthView(reg, "#"+exportContainer, calendar.PixelMetrics(), date, 0, 0)
	if err != nil {
		return exported{}, err
	}

	opts := export.Options{PixelRatio: ratio, Background: c.Palette().Background}
	if err := export.WriteFile(path, c.Renderer(), opts); err != nil {
		return exported{}, fmt.Errorf("exporting: %w", err)
	}
	v := c.View()
	return exported{title: c.Title(), tasks: len(MonthTasks(c.Tasks(), v.Year, v.Month))}, nil
}
