package main

import "suds/cmd"

func main() {
	cmd.Execute()
}
