// Package shell implements the line-oriented menu front-end.
//
// The shell reads operator input line by line and prints plain text, so it
// works the same on a terminal, through a pipe or from a test:
//
//	sh, err := shell.New(st, settings, os.Stdin, os.Stdout, logger)
//	if err != nil {
//	    return err
//	}
//	return sh.Run(ctx)
//
// Operation outcomes are described as leveled Events. The shell prints only
// the message; the TUI and the batch runner style or prefix them by level.
package shell
