package main

import (
	"os"

	"github.com/Belphemur/OpenSubtitlesAuto/cmd/addon/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
