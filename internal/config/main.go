package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	App = kingpin.New("mania", "osu!mania gameplay kernel: scoring, mods, skins and input.")

	Database     = App.Flag("db", "Score database").Default("./scores.db").String()
	BindingsFile = App.Flag("bindings", "Key bindings file (YAML)").ExistingFile()
	Mods         = App.Flag("mods", "Active mods, e.g. HRDT").Default("NM").Short('m').String()

	SkinCmd  = App.Command("skin", "Normalize a skin.ini and print its mania sections")
	SkinFile = SkinCmd.Arg("file", "skin.ini path").Required().ExistingFile()
	SkinKeys = SkinCmd.Flag("only", "Only print the section for this key count").Int()

	ModsCmd = App.Command("mods", "Print the effective OD/HP and hit windows")
	ModsOD  = ModsCmd.Arg("od", "Base overall difficulty").Required().Float64()
	ModsHP  = ModsCmd.Arg("hp", "Base HP drain").Default("5").Float64()

	ScoreCmd        = App.Command("score", "Score a judgement sequence")
	ScoreJudgements = ScoreCmd.Arg("judgements", "Judgements in order (320 300 200 100 50 0 or MAX/miss)").Required().Strings()
	ScoreObjects    = ScoreCmd.Flag("objects", "Chart hit object count, defaults to the number of judgements").Short('n').Int()
	ScoreChart      = ScoreCmd.Flag("chart", "Chart hash the record is saved under").Default("adhoc").String()
	ScoreSave       = ScoreCmd.Flag("save", "Save the replay record").Bool()

	HistoryCmd   = App.Command("history", "List saved records for a chart, rescoring each")
	HistoryChart = HistoryCmd.Arg("chart", "Chart hash").Required().String()

	Device      = App.Flag("device", "evdev keyboard device").Default("/dev/input/event0").Short('D').String()
	Audio       = App.Flag("audio", "mp3/ogg file to use as the clock").ExistingFile()
	Delay       = App.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	RefreshRate = App.Flag("refresh-rate", "Monitor refresh rate").Default("240.0").Short('R').Float64()
	KeyCount    = App.Flag("keys", "Key count").Default("4").Short('k').Uint8()

	KeytestCmd = App.Command("keytest", "Show per-tick held/tapped/released keys from an evdev keyboard")

	PlayCmd   = App.Command("play", "Play a generated metronome chart and save the result")
	PlayOD    = PlayCmd.Flag("od", "Base overall difficulty").Default("8").Float64()
	PlayBPM   = PlayCmd.Flag("bpm", "Beats per minute").Default("120").Float64()
	PlayNotes = PlayCmd.Flag("notes", "Number of notes").Default("64").Int()
)

func init() {
	App.Version("0.3.0")
	App.HelpFlag.Short('h')
}
