package main

import "refreshnow/internal/cli"

func main() {
	cli.Execute()
}
