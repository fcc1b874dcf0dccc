package cli

import (
	"github.com/spf13/cobra"

	"github.com/parameter1/omeda-go/pkg/entity"
)

// emailCommand creates the "email" command and its subcommands. Email
// endpoints are client scoped and need --client.
func (c *CLI) emailCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Email deployment lookups",
	}
	cmd.AddCommand(c.emailClicksCommand())
	return cmd
}

func (c *CLI) emailClicksCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "clicks <track-id>",
		Short:   "List the link clicks of an email deployment",
		Example: `  omeda email clicks ACME0101 --client AC`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, closeFn, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			var links []*entity.LinkClick
			err = c.spin(ctx, "Loading clicks", func() (err error) {
				links, err = client.Email().LinkClicks(ctx, args[0])
				return err
			})
			if err != nil {
				return err
			}

			printTitle(c.Out, "Links", len(links))
			for _, l := range links {
				printItem(c.Out, l.TotalClicks(), l.URL())
				if n := l.TotalUnrealClicks(); n > 0 {
					printDetail(c.Out, "%d bot clicks", n)
				}
			}
			return nil
		},
	}
}
