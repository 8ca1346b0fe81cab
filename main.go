package main

import "stepdrum/cmd"

func main() {
	cmd.Execute()
}
