package main

import (
	"github.com/Wolfiri/b1nb0t/bot"
)

func main() {
	bot.Start()
}
