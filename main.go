package main

import "github.com/theirongolddev/jars/cmd"

func main() {
	cmd.Execute()
}
