// Command formkit renders, validates and prompts forms built from OpenAPI
// request bodies.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "formkit:", err)
		}
		os.Exit(1)
	}
}
