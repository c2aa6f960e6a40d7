package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt"
)

// layerFlags are the inputs shared by build and preview. Only flags the
// user set override values reloaded from an existing descriptor.
type layerFlags struct {
	sheet         string
	layerName     string
	linesToIgnore int
	header        bool
	geometry      bool
	xField        string
	yField        string
	crs           string
}

func (lf *layerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&lf.sheet, "sheet", "", "Sheet to expose (default: first sheet)")
	cmd.Flags().StringVar(&lf.layerName, "layer-name", "", "Layer name (default: file base name)")
	cmd.Flags().IntVar(&lf.linesToIgnore, "skip", 0, "Number of leading lines to ignore")
	cmd.Flags().BoolVar(&lf.header, "header", false, "Use the first data line as field names")
	cmd.Flags().BoolVar(&lf.geometry, "geometry", false, "Build point geometry from x/y fields")
	cmd.Flags().StringVar(&lf.xField, "x", "", "X (longitude) field")
	cmd.Flags().StringVar(&lf.yField, "y", "", "Y (latitude) field")
	cmd.Flags().StringVar(&lf.crs, "crs", "", "Spatial reference, e.g. EPSG:4326")
}

func (lf *layerFlags) apply(cmd *cobra.Command, s *sheetvrt.Session) {
	changed := cmd.Flags().Changed
	s.Update(func(c *sheetvrt.BuilderContext) {
		if changed("sheet") {
			c.Sheet = lf.sheet
		}
		if changed("layer-name") {
			c.LayerName = lf.layerName
		}
		if changed("skip") {
			c.LinesToIgnore = lf.linesToIgnore
		}
		if changed("header") {
			c.Header = lf.header
		}
		if changed("geometry") {
			c.Geometry = lf.geometry
		}
		if changed("x") {
			c.Coordinates.X = lf.xField
		}
		if changed("y") {
			c.Coordinates.Y = lf.yField
		}
		if changed("crs") {
			c.CRS = lf.crs
		}
	})
}

func newBuildCmd() *cobra.Command {
	var (
		lf     layerFlags
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "build [input]",
		Short: "Write <input>.vrt for a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := setup(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := openInput(cmd, s, args[0]); err != nil {
				return err
			}
			lf.apply(cmd, s)

			if stdout {
				res, err := s.Build()
				if err != nil {
					return fmt.Errorf("build failed: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(res.Document)
				return err
			}

			path, err := s.WriteFinal(force)
			if err != nil {
				return fmt.Errorf("build failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	lf.register(cmd)
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing descriptor with different content")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print the descriptor instead of writing it")
	return cmd
}
