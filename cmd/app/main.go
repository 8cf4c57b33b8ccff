package main

import (
	"os"

	"github.com/BuzzLyutic/tasklist/internal/cmd"
)

func main() {
	// Конфигурация, логгер и хранилище поднимаются в подкомандах
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
