package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/parameter1/omeda-go/pkg/entity"
	"github.com/parameter1/omeda-go/pkg/omeda"
)

// brandCommand creates the brand lookup command group.
func (c *CLI) brandCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brand",
		Short: "Brand lookups",
	}

	cmd.AddCommand(c.brandCompCommand())
	cmd.AddCommand(c.brandDemographicsCommand())
	cmd.AddCommand(c.brandBehaviorsCommand())

	return cmd
}

func (c *CLI) brandCompCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comp",
		Short: "Print the brand comprehensive lookup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, closeFn, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			var resp *omeda.JSONResponse
			err = c.spin(ctx, "Loading brand", func() (err error) {
				resp, err = client.Brand().ComprehensiveLookup(ctx)
				return err
			})
			if err != nil {
				return err
			}
			return c.printResponse(resp)
		},
	}
}

func (c *CLI) brandDemographicsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "demographics",
		Short: "List the brand's demographics and their values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			client, closeFn, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			prog := newProgress(logger)
			var demos []*entity.Demographic
			err = c.spin(ctx, "Loading demographics", func() (err error) {
				demos, err = client.Brand().Demographics(ctx)
				return err
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Loaded %d demographics", len(demos)))

			if asJSON {
				return c.printJSON(demos)
			}
			printTitle(c.Out, "Demographics", len(demos))
			for _, d := range demos {
				printItem(c.Out, d.ID(), d.Description())
				for _, v := range d.Values() {
					printDetail(c.Out, "  %-8d %s", v.ID(), v.Description())
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print normalized records as JSON")
	return cmd
}

// behaviorLookups holds the four behavior lookups fetched together.
type behaviorLookups struct {
	behaviors  []*entity.Behavior
	actions    []any
	categories []any
	attributes []any
}

func (c *CLI) brandBehaviorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "behaviors",
		Short: "List behaviors with action, category and attribute counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, closeFn, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			var out behaviorLookups
			err = c.spin(ctx, "Loading behaviors", func() error {
				return fetchBehaviors(cmd, client, &out)
			})
			if err != nil {
				return err
			}

			printTitle(c.Out, "Behaviors", len(out.behaviors))
			for _, b := range out.behaviors {
				printItem(c.Out, b.ID(), b.Description())
			}
			printKeyValue(c.Out, "actions", fmt.Sprint(len(out.actions)))
			printKeyValue(c.Out, "categories", fmt.Sprint(len(out.categories)))
			printKeyValue(c.Out, "attributes", fmt.Sprint(len(out.attributes)))
			return nil
		},
	}
}

// fetchBehaviors runs the behavior lookups concurrently. Each goroutine
// writes a distinct field of out.
func fetchBehaviors(cmd *cobra.Command, client *omeda.Client, out *behaviorLookups) error {
	brand := client.Brand()
	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(func() (err error) {
		out.behaviors, err = brand.Behaviors(ctx)
		return err
	})
	g.Go(func() error {
		resp, err := brand.BehaviorActionsLookup(ctx)
		if err != nil {
			return err
		}
		out.actions = resp.GetAsArray("BehaviorActions")
		return nil
	})
	g.Go(func() error {
		resp, err := brand.BehaviorCategoriesLookup(ctx)
		if err != nil {
			return err
		}
		out.categories = resp.GetAsArray("BehaviorCategories")
		return nil
	})
	g.Go(func() error {
		resp, err := brand.BehaviorAttributesLookup(ctx)
		if err != nil {
			return err
		}
		out.attributes = resp.GetAsArray("BehaviorAttributes")
		return nil
	})

	return g.Wait()
}
