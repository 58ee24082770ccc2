package main

import "github.com/launchlab/launchpad/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
