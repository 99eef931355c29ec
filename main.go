package main

import "github.com/maemreyo/glean-teleprompter/cmd"

func main() {
	cmd.Execute()
}
