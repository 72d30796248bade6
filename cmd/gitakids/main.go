// Gitakids is a terminal reader for a child-friendly Bhagavad Gita.
//
// Usage:
//
//	gitakids [read] [--skip-splash] [--watch --catalog file.toml]
//	gitakids chapters [--difficulty easy] [--age 8]
//	gitakids verse 2 47
//	gitakids export 1 -o worksheet.pdf
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func main() {
	_ = godotenv.Load()

	c := newCLI(viper.New())
	err := c.root.Execute()
	c.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
