package main

import (
	cmd "github.com/kerbaras/countries/cmd/countries"
)

func main() {
	cmd.Execute()
}
