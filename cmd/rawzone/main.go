package main

import "github.com/adlake/rawzone/internal/cli"

func main() {
	cli.Execute()
}
