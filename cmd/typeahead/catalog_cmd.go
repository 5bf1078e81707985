package main

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/noborus/ov/oviewer"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"typeahead/internal/catalog"
	"typeahead/internal/domain"
)

func newCatalogCmd(configPath *string, overlay *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and extend the demo catalog",
	}

	open := func(cmd *cobra.Command) (*runtime, *catalog.Catalog, error) {
		rt, err := setup(cmd.Context(), *configPath, overlay, false)
		if err != nil {
			return nil, nil, err
		}
		cat, err := catalog.Open(rt.cfg.Catalog.Path)
		if err != nil {
			rt.cleanup()
			return nil, nil, serr.Wrap(err, "failed to open catalog", "path", rt.cfg.Catalog.Path)
		}
		return rt, cat, nil
	}

	var pager bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every catalog entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, cat, err := open(cmd)
			if err != nil {
				return err
			}
			defer rt.cleanup()
			defer cat.Close()

			entries, err := cat.List(rt.ctx)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			writeEntries(&buf, entries)
			if pager {
				return showInPager(&buf)
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
	listCmd.Flags().BoolVar(&pager, "pager", false, "page the listing with ov")

	var target, image string
	addCmd := &cobra.Command{
		Use:   "add <suggestion|product|page> <name>",
		Short: "Add or update a catalog entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cat, err := open(cmd)
			if err != nil {
				return err
			}
			defer rt.cleanup()
			defer cat.Close()

			category := domain.Category(args[0])
			item := domain.Item{Name: args[1], Target: target, Image: image}
			if err := cat.Add(rt.ctx, category, item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s %q\n", category, item.Name)
			return nil
		},
	}
	addCmd.Flags().StringVar(&target, "url", "", "link target")
	addCmd.Flags().StringVar(&image, "image", "", "thumbnail image (products)")

	cmd.AddCommand(listCmd, addCmd)
	return cmd
}

func writeEntries(w io.Writer, entries []catalog.Entry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tNAME\tURL\tIMAGE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Category, e.Name, e.Target, e.Image)
	}
	_ = tw.Flush()
}

// showInPager hands the terminal to ov until the user quits it
func showInPager(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return serr.Wrap(err, "failed to open pager")
	}

	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}
