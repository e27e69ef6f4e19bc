package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"dvdenrich/internal/services"
)

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(services.ExitCode(err))
}
