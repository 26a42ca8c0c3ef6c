package main

import (
	"os"

	"github.com/paddock-dev/paddock/cmd"
	"github.com/paddock-dev/paddock/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
