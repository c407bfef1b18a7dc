package main

import "cptracker/internal/server"

func main() {
	server.StartGinServer()
}
