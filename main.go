package main

import "bookmyconsultation/cmd"

func main() {
	cmd.Execute()
}
