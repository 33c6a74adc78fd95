package main

import "speedrush/internal/game"

func main() {
	game.RunDesktop()
}
