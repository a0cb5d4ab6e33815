package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/voidshard/atomcells"
)

// options shared by every subcommand
type options struct {
	mol            string
	config         string
	colours        string
	defaultColours bool
	verbose        bool

	projection string
	radius     float64
	workers    int
}

func (o *options) register(flags *pflag.FlagSet) {
	flags.StringVar(&o.mol, "mol", o.mol, "location of the protein / ligand mol2 file (required)")
	flags.StringVar(&o.config, "config", o.config, "optional YAML config, flags override its values")
	flags.StringVar(&o.colours, "colours", o.colours, "colour map file, records 'category; definition; colour'")
	flags.BoolVar(&o.defaultColours, "default-colours", o.defaultColours, "use built in element colours instead of a colour map file")
	flags.BoolVarP(&o.verbose, "verbose", "v", o.verbose, "human readable debug logging")
	flags.StringVar(&o.projection, "projection", o.projection, "perspective (x/|z|, y/|z|) or orthographic (x, y)")
	flags.Float64Var(&o.radius, "radius", o.radius, "distance of far vertices closing unbounded cells, 0 derives it from the atoms")
	flags.IntVar(&o.workers, "workers", o.workers, "goroutines reconstructing cells")
}

// load reads the config, colours & atoms and computes the diagram
func (o *options) load(cmd *cobra.Command, render func(*atomcells.RenderConfig)) (*atomcells.Diagram, *zap.Logger, error) {
	logger, err := newLogger(o.verbose)
	if err != nil {
		return nil, nil, err
	}
	fs := afero.NewOsFs()

	cfg := atomcells.DefaultConfig()
	if o.config != "" {
		cfg, err = atomcells.LoadConfig(fs, o.config)
		if err != nil {
			return nil, logger, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("projection") {
		cfg.Projection = atomcells.Projection(o.projection)
	}
	if flags.Changed("radius") {
		cfg.Radius = o.radius
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if render != nil {
		render(&cfg.Render)
	}

	var palette atomcells.Palette = atomcells.DefaultColourMap()
	if !o.defaultColours {
		palette, err = atomcells.LoadColourMap(fs, o.colours)
		if err != nil {
			return nil, logger, err
		}
	}

	name, atoms, err := atomcells.LoadMol2(fs, o.mol)
	if err != nil {
		return nil, logger, err
	}
	logger.Info("read molecule", zap.String("name", name), zap.Int("atoms", len(atoms)), zap.String("path", o.mol))

	d, err := atomcells.New(cfg, atoms, palette, logger)
	if err != nil {
		return nil, logger, err
	}
	d.Name = name
	return d.WithFs(fs), logger, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func makeRootCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "atomcells [command] (flags)",
		Short: "atomcells draws the voronoi cells of atoms in a mol2 file, coloured by atom type.",
		Long: `atomcells draws the voronoi cells of atoms in a mol2 file, coloured by atom type.

Atom positions are projected onto the plane, every atom gets the region of the
plane closest to it & unbounded regions on the hull are closed with far
vertices so every cell is a polygon.

Typical usage:
    atomcells render --mol ligand.mol2
        Draw out.jpg using the colour map labels_mol2.csv in the working directory.

    atomcells render --mol complex.mol2 --out cells.png --dpi 300 --highlight LIG1 --legend
        Draw a high resolution png with the cells of LIG1 outlined.

    atomcells summary --mol complex.mol2 --default-colours
        Print cell counts & areas per atom type.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	command.AddCommand(makeRenderCommand())
	command.AddCommand(makeSummaryCommand())

	return command
}

func makeRenderCommand() *cobra.Command {
	o := &options{colours: atomcells.DefaultColourMapFile}
	var (
		out       = atomcells.DefaultOutput
		dpi       float64
		alpha     float64
		legend    bool
		highlight string
		mesh      string
		index     string
		jsonOut   string
	)

	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		d, logger, err := o.load(cmd, func(r *atomcells.RenderConfig) {
			if flags.Changed("dpi") {
				r.DPI = dpi
			}
			if flags.Changed("alpha") {
				r.Alpha = alpha
			}
			if flags.Changed("legend") {
				r.Legend = legend
			}
			if flags.Changed("highlight") {
				r.Highlight = highlight
			}
		})
		if logger != nil {
			defer logger.Sync()
		}
		if err != nil {
			return err
		}

		err = d.Map().Save(out)
		if err != nil {
			return err
		}
		if index != "" {
			if err := d.Map().SaveIndex(index); err != nil {
				return err
			}
		}
		if mesh != "" {
			if err := d.SaveSTL(mesh); err != nil {
				return err
			}
		}
		if jsonOut != "" {
			if err := d.SaveJSON(jsonOut); err != nil {
				return err
			}
		}
		return nil
	}

	cmd := &cobra.Command{
		Use:   "render --mol <file>",
		Short: "Draw the cells of every atom to an image.",
		Long: `Draw the cells of every atom to an image, the format follows the output
file extension (.jpg .jpeg .png .tif .tiff .bmp).`,
		Args: cobra.NoArgs,
		RunE: runCmdFunc,
	}

	flags := cmd.Flags()
	o.register(flags)
	flags.StringVar(&out, "out", out, "location for the image to be saved")
	flags.Float64Var(&dpi, "dpi", dpi, "image quality in dpi, eg. 300")
	flags.Float64Var(&alpha, "alpha", alpha, "opacity of cell colours, 0-1")
	flags.BoolVar(&legend, "legend", legend, "draw a legend of the atom types present")
	flags.StringVar(&highlight, "highlight", highlight, "outline the cells of this substructure or atom name")
	flags.StringVar(&mesh, "mesh", mesh, "also write the cells as an STL mesh to this file")
	flags.StringVar(&index, "index", index, "also write the 16 bit cell index image (png) to this file")
	flags.StringVar(&jsonOut, "json", jsonOut, "also write the cells as json to this file")
	_ = cmd.MarkFlagRequired("mol")

	return cmd
}

func makeSummaryCommand() *cobra.Command {
	o := &options{colours: atomcells.DefaultColourMapFile}

	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		d, logger, err := o.load(cmd, nil)
		if logger != nil {
			defer logger.Sync()
		}
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetHeader([]string{"type", "cells", "unbounded", "mean bounded area"})

		total, unbounded := 0, 0
		for _, c := range d.Stats.Categories() {
			n, u := d.Stats.CellsByCategory[c], d.Stats.UnboundedByCategory[c]
			total += n
			unbounded += u
			table.Append([]string{
				string(c),
				strconv.Itoa(n),
				strconv.Itoa(u),
				strconv.FormatFloat(d.Stats.MeanBoundedArea(c), 'g', 4, 64),
			})
		}
		table.SetFooter([]string{"total", strconv.Itoa(total), strconv.Itoa(unbounded), ""})
		table.Render()

		return nil
	}

	cmd := &cobra.Command{
		Use:   "summary --mol <file>",
		Short: "Print cell counts & areas per atom type.",
		Long:  `Print cell counts & areas per atom type. Mean areas exclude cells closed with far vertices, their area depends on --radius.`,
		Args:  cobra.NoArgs,
		RunE:  runCmdFunc,
	}

	o.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("mol")

	return cmd
}

func main() {
	if err := makeRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "atomcells: %v\n", err)
		os.Exit(1)
	}
}
