// Command clue plays a hot-seat game of Clue in the terminal.
//
// Player names are taken from the arguments; without any, the configured
// default seats are used. Settings come from CLUE_* environment variables.
package main

import (
	"math/rand"
	"os"
	"time"

	"clue/internal/app"
	"clue/internal/config"
	"clue/internal/console"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func main() {
	settings, err := config.ParseEnv()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	level, err := logrus.ParseLevel(settings.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: settings.NoColor})

	if err := config.LoadGameConfig(settings.ConfigPath); err != nil {
		log.WithError(err).Warn("Could not load game config, using defaults")
	}
	gameCfg := config.GetGameConfig()

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.WithField("seed", seed).Debug("Seeding dice and deck")
	svc := app.NewService(rand.New(rand.NewSource(seed)), gameCfg.CardSet())

	names := os.Args[1:]
	if len(names) == 0 {
		names = gameCfg.Players()
	}
	game, events, err := svc.NewGame(names)
	if err != nil {
		log.Fatalf("Cannot start game: %v", err)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	session := console.NewSession(svc, game, os.Stdout, log, settings.NoColor)
	session.Show(events)
	if err := session.Run(line); err != nil {
		log.WithError(err).Error("Terminal input failed")
	}
}
