package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/parameter1/omeda-go/pkg/omeda"
)

// getCommand creates the "get" command.
func (c *CLI) getCommand() *cobra.Command {
	var (
		clientURL     bool
		allowNotFound bool
		noCache       bool
		ttl           time.Duration
	)

	cmd := &cobra.Command{
		Use:   "get <endpoint>",
		Short: "GET an endpoint and print the response",
		Long: `GET an endpoint relative to the brand (or client) URL and print the response.

JSON bodies are printed indented. Responses are cached by endpoint and TTL.`,
		Example: `  omeda get comp/*
  omeda get customer/42/* --allow-not-found
  omeda get deployment/lookup/* --client-url --ttl 10m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, closeFn, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			p := omeda.GetParams{
				Endpoint:     args[0],
				UseClientURL: clientURL,
				NoCache:      noCache,
				TTL:          ttl,
			}
			if p.TTL == 0 {
				p.TTL = c.config.Cache.TTL
			}
			if allowNotFound {
				p.ErrorOnNotFound = omeda.Bool(false)
			}

			var resp omeda.Response
			err = c.spin(ctx, "GET "+omeda.CleanPath(args[0]), func() (err error) {
				resp, err = client.Get(ctx, p)
				return err
			})
			if err != nil {
				return err
			}
			return c.printResponse(resp)
		},
	}

	cmd.Flags().BoolVar(&clientURL, "client-url", false, "resolve the endpoint against the client URL")
	cmd.Flags().BoolVar(&allowNotFound, "allow-not-found", false, "treat 404 as an empty response")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "cache TTL (default from config)")

	return cmd
}

// postCommand creates the "post" command.
func (c *CLI) postCommand() *cobra.Command {
	var (
		data      string
		text      bool
		clientURL bool
	)

	cmd := &cobra.Command{
		Use:   "post <endpoint>",
		Short: "POST a body to an endpoint and print the response",
		Long: `POST a body to an endpoint and print the response.

--data takes the body inline, from a file with @path, or from stdin with @-.
The body is sent as JSON unless --text is given.`,
		Example: `  omeda post storecustomerandorder/* --data @customer.json --input-id ABC123
  echo 'hello' | omeda post notes/* --text --data @-`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readData(data, cmd.InOrStdin())
			if err != nil {
				return err
			}

			p := omeda.PostParams{
				Endpoint:     args[0],
				UseClientURL: clientURL,
			}
			if text {
				p.BodyType = omeda.ContentTypeText
				p.Body = string(raw)
			} else {
				var body any
				if err := json.Unmarshal(raw, &body); err != nil {
					return fmt.Errorf("--data is not valid JSON: %w", err)
				}
				p.Body = body
			}

			ctx := cmd.Context()
			client, closeFn, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			var resp omeda.Response
			err = c.spin(ctx, "POST "+omeda.CleanPath(args[0]), func() (err error) {
				resp, err = client.Post(ctx, p)
				return err
			})
			if err != nil {
				return err
			}
			return c.printResponse(resp)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "request body, @file or @- for stdin")
	cmd.Flags().BoolVar(&text, "text", false, "send the body as text/plain")
	cmd.Flags().BoolVar(&clientURL, "client-url", false, "resolve the endpoint against the client URL")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

// readData resolves a --data argument.
func readData(data string, stdin io.Reader) ([]byte, error) {
	switch {
	case data == "@-":
		return io.ReadAll(stdin)
	case strings.HasPrefix(data, "@"):
		b, err := os.ReadFile(data[1:])
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return b, nil
	default:
		return []byte(data), nil
	}
}
