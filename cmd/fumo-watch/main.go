package main

import "github.com/kojima2223-star/Fumotoppara/internal/cli"

func main() {
	cli.Execute()
}
