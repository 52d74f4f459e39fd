package main

import "github.com/stash-kv/stash/cmd"

func main() {
	cmd.Execute()
}
