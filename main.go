// Command rewardscope explores the Gen Z self-reward survey from the terminal or a browser.
package main

import "github.com/rewardscope/rewardscope/cmd"

func main() {
	cmd.Execute()
}
