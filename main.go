package main

import "github.com/ngld/mcbuild/cmd"

func main() {
	cmd.Execute()
}
