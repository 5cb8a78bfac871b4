package main

import "github.com/ValentinKolb/dIO/cmd"

func main() {
	cmd.Execute()
}
