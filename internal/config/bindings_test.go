package config

import (
	"reflect"
	"testing"
)

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings([]byte("4: [a, s, k, l]\n9: [a, s, d, f, space, j, k, l, ';']\n"))
	if err != nil {
		t.Fatal(err)
	}
	keys, _ := b.Keys(4)
	if !reflect.DeepEqual(keys, []string{"a", "s", "k", "l"}) {
		t.Errorf("4K keys %v", keys)
	}
	if keys, _ := b.Keys(7); !reflect.DeepEqual(keys, DefaultBindings[7]) {
		t.Errorf("7K should keep its default, got %v", keys)
	}
	if b.KeyColumn(";", 9) != 8 || b.KeyColumn("q", 9) != -1 {
		t.Error("KeyColumn lookup")
	}
	if _, err := b.Keys(3); err == nil {
		t.Error("expected an error for an unbound key count")
	}
}

func TestParseBindingsInvalid(t *testing.T) {
	tests := []string{
		"4: [a, s, d]\n",
		"4: [a, s, a, d]\n",
		"4: not a list\n",
	}
	for _, in := range tests {
		if _, err := ParseBindings([]byte(in)); err == nil {
			t.Errorf("%q: expected an error", in)
		}
	}
}

func TestCommandLine(t *testing.T) {
	cmd, err := App.Parse([]string{"--mods", "HR", "score", "-n", "4", "320", "300", "200", "0"})
	if err != nil {
		t.Fatal(err)
	}
	if cmd != ScoreCmd.FullCommand() {
		t.Errorf("command %q", cmd)
	}
	if *Mods != "HR" || *ScoreObjects != 4 || len(*ScoreJudgements) != 4 {
		t.Errorf("parsed %v %v %v", *Mods, *ScoreObjects, *ScoreJudgements)
	}
}
