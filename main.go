package main

import "github.com/mabhi256/heapdiff/cmd"

func main() {
	cmd.Execute()
}
