package main

import "github.com/cesargomez89/albumdays/internal/cli"

func main() {
	cli.Execute()
}
