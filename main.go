package main

import (
	"flag"

	"sarvasva/internal/config"
	"sarvasva/internal/server"
)

func main() {
	flag.Parse()

	config.Config = config.Load()
	server.Start()
}
