// Command profilegen renders JSON input records into templated YAML
// data-pipeline profile files.
package main

import (
	"os"

	"github.com/leapforge/profilegen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
