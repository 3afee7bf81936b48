package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"task-manager/internal/cli"
	"task-manager/internal/errors"
)

func main() {
	factory := NewRepositoryFactory(getEnvironment())
	root := cli.NewRootCommand(factory.CreateRepository)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when the arguments were malformed and 1 for any other
// failure.
func exitCode(err error) int {
	if errors.IsErrorType(err, errors.ErrorTypeInvalidInput) {
		return 2
	}
	return 1
}
