package main

import "dright-core/cmd/wallet-cli/cmd"

func main() {
	cmd.Execute()
}
