package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"git.lost.host/meutraa/mania/internal/config"
	"git.lost.host/meutraa/mania/internal/game"
	"git.lost.host/meutraa/mania/internal/judge"
	"git.lost.host/meutraa/mania/internal/mathutil"
	"git.lost.host/meutraa/mania/internal/mods"
	"git.lost.host/meutraa/mania/internal/score"
	"git.lost.host/meutraa/mania/internal/skin"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	cmd, err := config.App.Parse(args)
	if nil != err {
		return err
	}
	m, err := mods.Parse(*config.Mods)
	if nil != err {
		return err
	}

	switch cmd {
	case config.SkinCmd.FullCommand():
		return runSkin()
	case config.ModsCmd.FullCommand():
		return runMods(m)
	case config.ScoreCmd.FullCommand():
		return runScore(m)
	case config.HistoryCmd.FullCommand():
		return runHistory()
	case config.KeytestCmd.FullCommand():
		return runKeytest(m)
	case config.PlayCmd.FullCommand():
		return runPlay(m)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func printSection(name string, s skin.Section) {
	fmt.Printf("[%s]\n", name)
	for _, k := range s.Keys() {
		fmt.Printf("%s: %s\n", k, s[k])
	}
	fmt.Println()
}

func runSkin() error {
	c, err := skin.Load(*config.SkinFile)
	if nil != err {
		return fmt.Errorf("unable to load skin: %w", err)
	}
	if *config.SkinKeys != 0 {
		s, ok := c.Mania(*config.SkinKeys)
		if !ok {
			return fmt.Errorf("skin has no %dK section, has %v", *config.SkinKeys, c.KeyCounts())
		}
		printSection(fmt.Sprintf("Mania%d", *config.SkinKeys), s)
		return nil
	}
	for _, n := range c.KeyCounts() {
		s, _ := c.Mania(n)
		printSection(fmt.Sprintf("Mania%d", n), s)
	}
	return nil
}

func runMods(m mods.ModSet) error {
	od, err := mods.EffectiveValue(*config.ModsOD, mods.OD, m)
	if nil != err {
		return err
	}
	hp, err := mods.EffectiveValue(*config.ModsHP, mods.HP, m)
	if nil != err {
		return err
	}
	fmt.Printf("%6v  rate %.2fx\n", m, m.Rate())
	fmt.Printf("    OD:  %5.2f -> %5.2f (%+.2f)\n", *config.ModsOD, mathutil.Round(od, 2), mathutil.Round(od-*config.ModsOD, 2))
	fmt.Printf("    HP:  %5.2f -> %5.2f (%+.2f)\n", *config.ModsHP, mathutil.Round(hp, 2), mathutil.Round(hp-*config.ModsHP, 2))

	w := judge.ForOD(od)
	for _, j := range game.Judgements {
		fmt.Printf("%6v: ±%v\n", j, w.Window(j))
	}
	return nil
}

func runScore(m mods.ModSet) error {
	judgements := make([]game.Judgement, 0, len(*config.ScoreJudgements))
	for _, s := range *config.ScoreJudgements {
		// allow "320,300,200"
		for _, f := range strings.Split(s, ",") {
			if f == "" {
				continue
			}
			j, err := game.ParseJudgement(f)
			if nil != err {
				return err
			}
			judgements = append(judgements, j)
		}
	}
	objects := *config.ScoreObjects
	if objects == 0 {
		objects = len(judgements)
	}

	acc, err := score.NewAccumulator(objects)
	if nil != err {
		return err
	}
	for i, j := range judgements {
		delta, err := acc.Add(j)
		if nil != err {
			return err
		}
		fmt.Printf("%4d %6v  %+12.4f  bonus %3d  total %12.4f\n", i+1, j, delta, acc.Bonus(), acc.Total())
	}
	fmt.Printf("score %.0f  accuracy %.2f%%  grade %s\n", acc.Total(), mathutil.Round(acc.Accuracy()*100, 2), score.Grade(acc.Accuracy()))

	if !*config.ScoreSave {
		return nil
	}
	store, err := score.Open(*config.Database)
	if nil != err {
		return err
	}
	defer store.Close()
	record := &score.Record{
		ChartHash:  *config.ScoreChart,
		Mods:       m.String(),
		Rate:       m.Rate(),
		HitObjects: objects,
		Judgements: judgements,
		Score:      acc.Total(),
	}
	if err := store.Save(context.Background(), record); nil != err {
		return err
	}
	log.Printf("saved record %v\n", record.ID)
	return nil
}

func runHistory() error {
	store, err := score.Open(*config.Database)
	if nil != err {
		return err
	}
	defer store.Close()

	records, err := store.Load(context.Background(), *config.HistoryChart)
	if nil != err {
		return err
	}
	for _, r := range records {
		rescored, err := r.Rescore()
		if nil != err {
			log.Println("unable to rescore", r.ID, err)
			continue
		}
		mark := ""
		if rescored != r.Score {
			mark = " (stored score differs)"
		}
		fmt.Printf("%v  %s  %-6s %4d notes  %.0f%s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Mods, len(r.Judgements), rescored, mark)
	}
	return nil
}
