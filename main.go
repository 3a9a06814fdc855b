package main

import "github.com/teamcrest/crest/cmd"

func main() {
	cmd.Execute()
}
