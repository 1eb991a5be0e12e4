package main

import "github.com/mjdelrosario/bpo-portal/cmd"

func main() {
	cmd.Execute()
}
