package main

import "github.com/BersamaBelajar/gudang-pintar/cmd"

func main() {
	cmd.Execute()
}
