package main

import "github.com/fotokiosk/kiosk/cmd"

func main() {
	cmd.Execute()
}
