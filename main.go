package main

import "github.com/ashwin2912/alfred-sub000/cmd"

func main() {
	cmd.Execute()
}
