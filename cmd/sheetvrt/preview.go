package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt"
)

func newPreviewCmd() *cobra.Command {
	var (
		lf    layerFlags
		rows  int
		write bool
	)

	cmd := &cobra.Command{
		Use:   "preview [input]",
		Short: "Show inferred fields and the sample descriptor",
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

			if write {
				path, err := s.WritePreview(rows)
				if err != nil {
					return fmt.Errorf("preview failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}

			res, err := s.Preview(rows)
			if err != nil {
				return fmt.Errorf("preview failed: %w", err)
			}
			return printPreview(cmd, s, res)
		},
	}

	lf.register(cmd)
	cmd.Flags().IntVar(&rows, "rows", 0, "Maximum sample rows (default: configured sample_rows)")
	cmd.Flags().BoolVar(&write, "write", false, "Write <input>.tmp.vrt instead of printing")
	return cmd
}

func printPreview(cmd *cobra.Command, s *sheetvrt.Session, res *sheetvrt.Result) error {
	out := cmd.OutOrStdout()
	c := s.Context()

	fmt.Fprintf(out, "driver: %s  sheet: %s  offset: %d  limit: %d\n",
		s.Driver(), c.Sheet, res.Window.Offset(), res.Limit)
	if s.HeaderLocked() {
		fmt.Fprintf(out, "header: read natively by the %s driver\n", s.Driver())
	}
	if !res.GeometryAllowed {
		fmt.Fprintln(out, "geometry: unavailable with a non-zero offset")
	}
	region, ok, err := s.DataRegion()
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(out, "data: %s (suggested --skip %d)\n", region, region.SuggestedLinesToIgnore())
	}
	fmt.Fprintf(out, "x: %s  y: %s\n\n", res.Guessed.X, res.Guessed.Y)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSOURCE\tTYPE")
	for _, col := range res.Descriptor.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", col.Name, col.Src, col.Type)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	_, err = out.Write(res.Document)
	return err
}
