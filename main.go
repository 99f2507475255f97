// Fireworks: click anywhere on the canvas to launch a burst of particles.
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose             Enable logging
//	--config <path>       Load configuration from a file instead of the embedded defaults
//	--server <url>        Preset store base URL (overrides the config file)
//	--mode rest|query     Preset store request shape (overrides the config file)
//	--fullscreen          Start in fullscreen
//
// Controls:
//
//	Mouse Click / Touch   - Launch a firework at the pointer
//	Color swatches        - Pick the rocket color
//	Size / Particles      - Adjust the rocket
//	Save / Load           - Store the rocket in, or fetch all rockets from, the preset store
//	N                     - Apply the next loaded preset
//	F11                   - Toggle fullscreen
package main

import (
	"flag"
	"log"

	"github.com/decker502/fireworks/pkg/app"
	"github.com/decker502/fireworks/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag     = flag.String("config", "", "Path to a fireworks.yaml overriding the embedded one")
	serverFlag     = flag.String("server", "", "Preset store base URL")
	modeFlag       = flag.String("mode", "", "Preset store request shape: rest or query")
	fullscreenFlag = flag.Bool("fullscreen", false, "Start in fullscreen mode")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	fireworksApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		ServerURL:  *serverFlag,
		Mode:       *modeFlag,
		Fullscreen: *fullscreenFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	fireworksApp.ApplyWindowSettings()

	if err := ebiten.RunGame(fireworksApp); err != nil {
		log.Fatal(err)
	}
}
