package main

import "webify/internal/services"

// Process exit codes. They are part of the command's interface; do not renumber.
const (
	exitSuccess            = 0
	exitIO                 = 1
	exitInvalidInvocation  = 2
	exitInputNotFound      = 3
	exitIncompatibleExport = 4
	exitExtraction         = 5
	exitCorruptMetadata    = 6
	exitUnknownDeck        = 7
	exitMalformedCard      = 8
	exitAlreadyExists      = 9
	exitConfiguration      = 10
)

var categoryExitCodes = map[string]int{
	services.CategoryInvalidInvocation:  exitInvalidInvocation,
	services.CategoryInputNotFound:      exitInputNotFound,
	services.CategoryIncompatibleExport: exitIncompatibleExport,
	services.CategoryExtraction:         exitExtraction,
	services.CategoryCorruptMetadata:    exitCorruptMetadata,
	services.CategoryUnknownDeck:        exitUnknownDeck,
	services.CategoryMalformedCard:      exitMalformedCard,
	services.CategoryAlreadyExists:      exitAlreadyExists,
	services.CategoryConfiguration:      exitConfiguration,
	services.CategoryIO:                 exitIO,
}

func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if code, ok := categoryExitCodes[services.Classify(err)]; ok {
		return code
	}
	return exitIO
}
