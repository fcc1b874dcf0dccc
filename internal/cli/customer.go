package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/parameter1/omeda-go/pkg/entity"
)

// customerCommand creates the "customer" command.
func (c *CLI) customerCommand() *cobra.Command {
	var emails bool

	cmd := &cobra.Command{
		Use:   "customer <id>",
		Short: "Look up a customer by Omeda id",
		Example: `  omeda customer 42
  omeda customer 42 --emails`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("customer id must be a positive integer, got %q", args[0])
			}

			ctx := cmd.Context()
			client, closeFn, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			if emails {
				var list []*entity.CustomerEmail
				err = c.spin(ctx, "Loading emails", func() (err error) {
					list, err = client.Customer().Emails(ctx, id)
					return err
				})
				if err != nil {
					return err
				}
				printTitle(c.Out, "Emails", len(list))
				for _, e := range list {
					line := e.Address()
					if e.IsPrimary() {
						line += " " + StyleDim.Render("(primary)")
					}
					printItem(c.Out, e.ID(), line)
				}
				return nil
			}

			var cust *entity.Customer
			err = c.spin(ctx, "Loading customer", func() (err error) {
				cust, err = client.Customer().LookupByID(ctx, id)
				return err
			})
			if err != nil {
				return err
			}
			return c.printJSON(cust)
		},
	}

	cmd.Flags().BoolVar(&emails, "emails", false, "list the customer's email addresses")
	return cmd
}
