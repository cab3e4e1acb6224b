package main

import "github.com/Sena-ops/reportconverter/cmd"

func main() {
	cmd.Execute()
}
