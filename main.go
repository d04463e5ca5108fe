package main

import "hotel-paradiso/cmd"

func main() {
	cmd.Execute()
}
