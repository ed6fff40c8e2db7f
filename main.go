package main

import "github.com/ledgerline/guideline-converter/cmd"

func main() {
	cmd.Execute()
}
