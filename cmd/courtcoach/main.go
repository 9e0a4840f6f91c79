package main

import "github.com/OpenTraceLab/CourtCoach/cmd/courtcoach/cmd"

func main() {
	cmd.Execute()
}
