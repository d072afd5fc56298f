package main

import "ayvcodr/internal/app"

// @title        AyvCodr
// @description  AyvCodr API Platform
// @version      1.0.0
func main() {
	app.Run()
}
