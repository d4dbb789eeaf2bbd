package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	rootCmd := newRootCmd()
	rootCmd.SetHelpTemplate(`{{.UsageString}}`)
	fatalIf(rootCmd.Execute())
}

func fatalIf(err error) {
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
