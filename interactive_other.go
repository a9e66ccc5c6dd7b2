//go:build !linux

package main

import (
	"errors"

	"git.lost.host/meutraa/mania/internal/mods"
)

var errNoDevice = errors.New("reading an evdev keyboard is only supported on linux")

func runKeytest(m mods.ModSet) error { return errNoDevice }

func runPlay(m mods.ModSet) error { return errNoDevice }
