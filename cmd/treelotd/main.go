package main

import "github.com/treelot/treelotd/internal/cli"

func main() {
	cli.Execute()
}
