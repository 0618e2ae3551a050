package main

import "github.com/aokyut/Qit/internal/cmd"

func main() {
	cmd.Execute()
}
