package main

import "github.com/phanxgames/evergreen/cmd"

func main() {
	cmd.Execute()
}
