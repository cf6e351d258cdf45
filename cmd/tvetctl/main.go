// Command tvetctl runs database migrations and provisions TVET administrator
// accounts, which have no public signup.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(productionEnv()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
