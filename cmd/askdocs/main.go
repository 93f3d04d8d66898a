package main

import "github.com/askdocs/askdocs-cli/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
