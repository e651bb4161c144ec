package main

import "github.com/articled/apiserver/cmd"

func main() {
	cmd.Execute()
}
