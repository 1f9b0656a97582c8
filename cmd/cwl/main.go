package main

import "github.com/mcoot/cwlroster/internal/cli"

func main() {
	cli.Execute()
}
