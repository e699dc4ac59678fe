package main

import "github.com/kamusis/wuwa-assets/cmd"

func main() {
	cmd.Execute()
}
