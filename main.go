package main

import (
	"os"

	"github.com/user/getinsights/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
