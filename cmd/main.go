package main

import (
	"github.com/vkurdin/shop-svc/internal/app"
	"github.com/vkurdin/shop-svc/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
