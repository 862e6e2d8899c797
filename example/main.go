package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/bannerkit/twsave/backup"
	"github.com/bannerkit/twsave/log"
	"github.com/bannerkit/twsave/store"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("you should provide a save filename as a positional argument")
		os.Exit(1)
	}
	path := os.Args[1]

	// engine diagnostics go to stderr; drop these two lines for silence
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	log.SetLogger(log.NewZerologAdapter(zlog))

	ctx := context.Background()

	save, err := store.Load(ctx, path, store.DefaultLoadOptions())
	if err != nil {
		fmt.Println("failed to load save:", err)
		os.Exit(1)
	}

	fmt.Println("Character:", save.Metadata.CharacterName)
	fmt.Println("Game version:", save.Header.GameVersion)
	fmt.Printf("Campaign date: %s %d, year %d\n",
		save.Time.Season(), save.Time.DayOfSeason(), save.Time.Year())
	fmt.Printf("Entities: %d heroes, %d parties, %d settlements, %d fleets\n",
		len(save.Heroes), len(save.Parties), len(save.Settlements), len(save.Fleets))

	if save.Report != nil && save.Report.Len() > 0 {
		fmt.Printf("Validation: %d errors, %d warnings\n",
			len(save.Report.Errors), len(save.Report.Warnings))
	}

	hero := save.MainHero()
	if hero == nil {
		fmt.Println("no main hero in this save, nothing to edit")
		return
	}
	fmt.Println("Main hero gold:", hero.Gold)

	// snapshot before editing, then give the hero a little bonus
	engine := backup.New(backup.DefaultConfig(path + ".backups"))
	hero.SetGold(hero.Gold + 1000)

	opts := store.DefaultSaveOptions()
	opts.Backup = engine
	opts.CreateBackup = true
	if err := store.Save(ctx, save, path, opts); err != nil {
		fmt.Println("failed to save:", err)
		os.Exit(1)
	}
	fmt.Println("saved with +1000 gold; pre-edit snapshot taken")
}
