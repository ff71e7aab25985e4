package main

import (
	"github.com/OliveiraNt/tabsmith/cmd"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
