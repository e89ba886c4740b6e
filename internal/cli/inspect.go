package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strandlab/rnaplot/pkg/pipeline"
)

// newInspectCmd creates the inspect command for showing parse and
// layout statistics without writing any artifact.
func newInspectCmd() *cobra.Command {
	var noAlign bool

	cmd := &cobra.Command{
		Use:   "inspect STRUCTURE",
		Short: "Show parse and layout statistics for a structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := pipeline.Options{
				Structure: args[0],
				NoAlign:   noAlign,
				Logger:    loggerFromContext(ctx),
			}

			runner, err := newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			p, err := runner.Parse(ctx, opts)
			if err != nil {
				return err
			}
			l, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, p, opts)
			if err != nil {
				return err
			}

			unpaired := 0
			for _, j := range p.Pairs {
				if j < 0 {
					unpaired++
				}
			}
			hairpins := 0
			for i := range p.Tree.Loops {
				if p.Tree.Loops[i].IsHairpin() {
					hairpins++
				}
			}

			fmt.Println(StyleTitle.Render("Structure"))
			printKeyValue("nucleotides", fmt.Sprintf("%d", p.N))
			printKeyValue("pairs", fmt.Sprintf("%d", (p.N-unpaired)/2))
			printKeyValue("unpaired", fmt.Sprintf("%d", unpaired))
			printKeyValue("strands", fmt.Sprintf("%d", p.Strands()))
			printKeyValue("stems", fmt.Sprintf("%d", len(p.Tree.Stems)))
			printKeyValue("loops", fmt.Sprintf("%d", len(p.Tree.Loops)))
			printKeyValue("hairpins", fmt.Sprintf("%d", hairpins))

			fmt.Println(StyleTitle.Render("Layout"))
			printKeyValue("bounds", fmt.Sprintf("%.2f × %.2f", l.Bounds.Width(), l.Bounds.Height()))
			printKeyValue("backbone", fmt.Sprintf("%d segments", len(l.BackboneSegments)))
			printKeyValue("outline", fmt.Sprintf("%d segments", len(l.Outline)))
			status := iconFresh
			if hit {
				status = iconCached
			}
			printKeyValue("layout", status)

			printNextStep("Draw it", fmt.Sprintf("rnaplot draw %q", args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noAlign, "no-align", false, "skip exterior strand alignment")

	return cmd
}
