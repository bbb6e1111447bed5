// Command sprout is the herbicide dosage and mixture estimator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/kmoss/sprout/internal/cli"
	"github.com/kmoss/sprout/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run builds and executes the root command.
func run() error {
	rootCmd := cli.NewRootCmd(version.GetVersion())
	return rootCmd.Execute()
}
