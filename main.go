// Package main is the entry point for the acqscore CLI.
package main

import (
	"github.com/huangsam/acqscore/cmd"
	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/internal/iocache"
)

func main() {
	defer contract.SyncLogger()
	defer iocache.CloseCaching()

	if err := cmd.Execute(); err != nil {
		iocache.CloseCaching()
		contract.LogFatal("Command failed", err)
	}
}
