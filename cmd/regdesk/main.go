package main

import "github.com/nfrund/regdesk/cmd/regdesk/cmd"

func main() {
	cmd.Execute()
}
