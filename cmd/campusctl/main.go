// Command campusctl is an operator CLI over the configured store: list the
// feed, manage the subscriber roster and send broadcasts.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(loadEnv).Execute(); err != nil {
		os.Exit(1)
	}
}
