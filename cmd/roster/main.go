// Command roster manages academic record files and mirrors them to DynamoDB.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		os.Exit(1)
	}
}
