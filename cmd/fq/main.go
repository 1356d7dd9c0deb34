package main

import (
	"context"
	"os"

	"github.com/fatih/color"

	"fq/internal/cli"
	appErrors "fq/internal/errors"
)

func main() {
	rootCmd := cli.NewRootCommand()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		exitWithError(err)
	}
}

func exitWithError(err error) {
	color.New(color.FgRed).Fprintln(os.Stderr, appErrors.UserMessage(err))
	os.Exit(1)
}
