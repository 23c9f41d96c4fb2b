package main

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/katalvlaran/sketchpath/canvas"
	"github.com/katalvlaran/sketchpath/config"
	"github.com/katalvlaran/sketchpath/gridpath"
	"github.com/katalvlaran/sketchpath/render"
)

var routeCmd = &cobra.Command{
	Use:   "route [FROM TO]",
	Short: "Replay a scenario offline and print every route with the final map",
	Long: `Loads the scenario (or the default empty canvas), draws its obstacles,
replays its routes in order and prints one line per route followed by the
ASCII map. An extra FROM TO pair ("x,y" each) is routed after the scenario.`,
	Example: `  sketchpath route -s maze.yaml
  sketchpath route -s maze.yaml 0,0 39,19 --png out.png`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("route takes no arguments or a FROM TO pair, got %d", len(args))
		}
		return nil
	},
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().String("png", "", "Also write the canvas as a PNG image to this file")
	routeCmd.Flags().String("color", "auto", "Color the map: auto, always or never")
}

func runRoute(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	requests := make([][2]gridpath.Coord, 0, len(cfg.Routes)+1)
	for _, r := range cfg.Routes {
		requests = append(requests, [2]gridpath.Coord{r.Start.Coord(), r.Goal.Coord()})
	}
	if len(args) == 2 {
		from, err := gridpath.ParseCoord(args[0])
		if err != nil {
			return err
		}
		to, err := gridpath.ParseCoord(args[1])
		if err != nil {
			return err
		}
		requests = append(requests, [2]gridpath.Coord{from, to})
	}

	cv, err := cfg.NewCanvas(canvas.WithLogger(logger))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, req := range requests {
		r, err := cv.Route(req[0], req[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "route %d %v→%v: found=%t steps=%d expanded=%d\n",
			i+1, r.Start, r.Goal, r.Found, len(r.Path), r.Expanded)
	}

	colorMode, _ := cmd.Flags().GetString("color")
	profile, err := colorProfile(colorMode, out)
	if err != nil {
		return err
	}
	if err := render.ASCII(out, cv.Walkability(), cv.Routes(), render.WithProfile(profile)); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("png"); path != "" {
		if err := writePNG(path, cv, cfg.Render.Scale); err != nil {
			return err
		}
		logger.Info("png written", "path", path)
	}

	return nil
}

// loadScenario reads --scenario, falling back to config.Default().
func loadScenario(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("scenario")
	if path == "" {
		return config.Default(), nil
	}

	return config.Load(path)
}

// colorProfile resolves --color; "auto" colors only when out is a terminal.
func colorProfile(mode string, out io.Writer) (termenv.Profile, error) {
	switch mode {
	case "never":
		return termenv.Ascii, nil
	case "always":
		return termenv.ANSI256, nil
	case "auto":
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return termenv.NewOutput(f).EnvColorProfile(), nil
		}
		return termenv.Ascii, nil
	}

	return termenv.Ascii, fmt.Errorf("unknown --color %q: want auto, always or never", mode)
}

func writePNG(path string, cv *canvas.Canvas, scale int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return render.PNG(f, cv, scale)
}
