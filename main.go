package main

import "github.com/kevinaaaquil/library/backend/cmd"

func main() {
	cmd.Execute()
}
