package cli

import (
	"context"
	"io"
)

// Execute runs the omeda CLI with args (without the program name).
// Command output is written to stdout; logs, spinners and stats lines
// go to stderr.
//
// Logging:
//   - Default: info level
//   - With --verbose (-v): debug level, and every request is logged
//
// Example:
//
//	func main() {
//	    if err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := New(stderr, LogInfo)
	c.Out = stdout

	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
