package main

import "github.com/materials-commons/mcsqa/cmd/mcsqa/cmd"

func main() {
	cmd.Execute()
}
