package main

import (
	"github.com/Kwonjooeun/weaponctl/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
