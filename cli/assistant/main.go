package main

import (
	"os"

	assistantcmder "github.com/ncuacg/assistant/cmd/assistant"
)

func main() {
	cmd := assistantcmder.NewAssistantCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
