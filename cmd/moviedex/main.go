package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// execute runs one command line and returns the process exit code. Failures
// are printed to out as an error envelope.
func execute(ctx context.Context, args []string, out io.Writer) int {
	a := newApp(out)
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)
	if err := root.ExecuteContext(ctx); err != nil {
		code, message, details := errorCode(err)
		a.logger.Debug("command failed", zap.Error(err))
		_ = a.printer.Error(code, message, details)
		return 1
	}
	return 0
}
