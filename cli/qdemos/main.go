package main

import (
	"os"

	qdemoscmder "qdemos/cmd/qdemos"
)

func main() {
	cmd := qdemoscmder.NewQdemosCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
