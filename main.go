package main

import "github.com/codetesla51/smartstore/cmd"

func main() {
	cmd.Execute()
}
