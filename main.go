package main

import "github.com/acmelabs/invoice-dashboard/cmd"

func main() {
	cmd.Execute()
}
