package main

import (
	"os"

	"github.com/fengshan-hs/timetable/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
