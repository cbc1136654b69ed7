package main

import "senti/internal/cli"

func main() {
	cli.Execute()
}
