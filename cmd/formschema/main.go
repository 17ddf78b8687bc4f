// Command formschema renders, validates and previews form schemas.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(newApp(os.Stdout, os.Stderr)).Execute(); err != nil {
		os.Exit(1)
	}
}
