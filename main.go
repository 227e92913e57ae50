package main

import "budget-core/cmd"

func main() {
	cmd.Execute()
}
