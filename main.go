package main

import (
	"github.com/BoulehmiHoussem/Logient/cmd"
)

func main() {
	cmd.Execute()
}
