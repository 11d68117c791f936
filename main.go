package main

import "github.com/Axiom-208/Youtube-Clippa/internal/cli"

func main() {
	cli.Main()
}
