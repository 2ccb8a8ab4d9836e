package main

import (
	cmd "github.com/deepcare-ai/deepcare/cmd/deepcare"
	"github.com/deepcare-ai/deepcare/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting deepcare")
	cmd.Execute()
}
