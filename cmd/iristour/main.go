package main

import "iristour/pkg/cli"

func main() {
	cli.Execute()
}
