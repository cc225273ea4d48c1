package main

import "github.com/cliniquehq/clinique_backend/cmd"

func main() {
	cmd.Execute()
}
