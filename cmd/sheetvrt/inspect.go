package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/vrt"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [descriptor.vrt]",
		Short: "Show the settings stored in a descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			p, err := vrt.Parse(f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "layer:    %s\n", p.LayerName)
			fmt.Fprintf(out, "source:   %s\n", p.SourceRef)
			fmt.Fprintf(out, "sheet:    %s\n", p.Sheet)
			if p.Offset != nil {
				fmt.Fprintf(out, "offset:   %d\n", *p.Offset)
			}
			fmt.Fprintf(out, "geometry: %t\n", p.Geometry)
			if p.Geometry {
				fmt.Fprintf(out, "crs:      %s\n", p.CRS)
				fmt.Fprintf(out, "x, y:     %s, %s\n", p.X, p.Y)
			}
			for _, fd := range p.Fields {
				fmt.Fprintf(out, "field:    %s <- %s (%s)\n", fd.Name, fd.Src, fd.Type)
			}
			return nil
		},
	}
}
