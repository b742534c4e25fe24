package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/nanodoc/internal/cli"
	"github.com/arthur-debert/nanodoc/internal/utils"
)

const verboseFlag = "--verbose"

// main is the entry point for the nanodoc command.
func main() {
	verboseEnabled := false
	for _, argument := range os.Args[1:] {
		if argument == verboseFlag {
			verboseEnabled = true
			break
		}
	}

	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(verboseEnabled)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(loggerInstance); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
