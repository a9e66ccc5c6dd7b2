package mods

import (
	"errors"
	"testing"
)

func TestNoModsIsIdentity(t *testing.T) {
	for i := 0; i <= 100; i++ {
		base := float64(i) / 10
		for _, kind := range []Kind{OD, HP} {
			v, err := EffectiveValue(base, kind, ModSet{})
			if err != nil || v != base {
				t.Errorf("%v %v: got %v %v", kind, base, v, err)
			}
		}
	}
}

type effectiveTest struct {
	base     float64
	kind     Kind
	mods     string
	expected float64
}

var effectiveTests = []effectiveTest{
	{5, OD, "HR", 7},
	{8, OD, "HR", 10},
	{10, HP, "HR", 10},
	{8, OD, "EZ", 4},
	{0, HP, "EZ", 0},
	{7, OD, "DT", 7},
	{7, HP, "HTEZ", 3.5},
	{6, OD, "NCHR", 8.4},
}

func TestEffectiveValue(t *testing.T) {
	for _, test := range effectiveTests {
		m, err := Parse(test.mods)
		if err != nil {
			t.Fatal(err)
		}
		v, err := EffectiveValue(test.base, test.kind, m)
		if err != nil {
			t.Fatal(err)
		}
		if diff := v - test.expected; diff > 1e-9 || diff < -1e-9 {
			t.Log("test    ", test)
			t.Log("out     ", v)
			t.Fail()
		}
	}
}

func TestEffectiveValueStaysInRange(t *testing.T) {
	sets := []string{"", "HR", "EZ", "DT", "HT", "HRDT", "EZHT"}
	for _, s := range sets {
		m, _ := Parse(s)
		for i := 0; i <= 1000; i++ {
			base := float64(i) / 100
			for _, kind := range []Kind{OD, HP} {
				v, err := EffectiveValue(base, kind, m)
				if err != nil || v < MinValue || v > MaxValue {
					t.Fatalf("%s %v %v -> %v %v", s, kind, base, v, err)
				}
			}
		}
	}
}

func TestDifficultyAdjust(t *testing.T) {
	od, hp := 9.0, 12.0
	m := ModSet{OverallDifficulty: &od, DrainRate: &hp, HardRock: true}
	v, _ := EffectiveValue(2, OD, m)
	if v != 10 {
		t.Errorf("DA+HR OD = %v", v)
	}
	v, _ = EffectiveValue(2, HP, ModSet{DrainRate: &hp})
	if v != 10 {
		t.Errorf("override above range should clamp, got %v", v)
	}
	if m.String() != "HRDA" {
		t.Errorf("String() = %q", m.String())
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := EffectiveValue(5, Kind(7), ModSet{})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestParse(t *testing.T) {
	m, err := Parse("hr, dt")
	if err != nil || !m.HardRock || !m.DoubleTime || m.Rate() != 1.5 {
		t.Errorf("Parse(hr, dt) = %+v, %v", m, err)
	}
	if m.String() != "HRDT" {
		t.Errorf("String() = %q", m.String())
	}
	if m, _ := Parse("NM"); m.String() != "NM" || m.Rate() != 1 {
		t.Errorf("NM parsed to %v", m)
	}
	if _, err := Parse("HRXX"); !errors.Is(err, ErrUnknownMod) {
		t.Errorf("expected ErrUnknownMod, got %v", err)
	}
	if _, err := Parse("HREZ"); !errors.Is(err, ErrIncompatible) {
		t.Errorf("expected ErrIncompatible, got %v", err)
	}
	if _, err := Parse("DTHT"); !errors.Is(err, ErrIncompatible) {
		t.Errorf("expected ErrIncompatible, got %v", err)
	}
}
