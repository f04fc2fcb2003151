package main

import (
	"fmt"
	"os"

	"github.com/kobzarvs/tmxalign/internal/cli"
	"github.com/kobzarvs/tmxalign/internal/logger"
)

func main() {
	err := cli.NewRootCommand().Execute()
	logger.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tmxalign:", err)
		os.Exit(1)
	}
}
