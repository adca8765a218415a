package main

import (
	"embed"
	"fmt"
	"os"
)

//go:embed assets/*
var embeddedAssets embed.FS

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
