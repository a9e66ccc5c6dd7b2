//go:build linux

package input

import (
	"encoding/binary"
	"errors"
	"io"
	"log"
	"os"
	"sync"
	"syscall"
	"time"
)

// linux/input-event-codes.h
const (
	evKey = 0x01

	valueRelease = 0
	valuePress   = 1
	valueRepeat  = 2
)

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// ReadDevice reads key events from an evdev device such as
// /dev/input/event3 and pushes them to events until the returned closer
// is closed. Autorepeat is delivered as a press.
func ReadDevice(kbd string, events *Events) (io.Closer, error) {
	file, err := os.Open(kbd)
	if err != nil {
		return nil, err
	}
	d := &device{File: file, done: make(chan struct{})}
	go func() {
		var ev keyEvent
		for {
			err := binary.Read(file, binary.LittleEndian, &ev)
			if nil != err {
				if !errors.Is(err, os.ErrClosed) {
					log.Println(err, "unable to read keyboard input")
				}
				return
			}
			if ev.Type != evKey {
				continue
			}
			var pressed bool
			switch ev.Value {
			case valuePress, valueRepeat:
				pressed = true
			case valueRelease:
				pressed = false
			default:
				continue
			}
			sent := events.Send(Event{
				Key:     KeyName(ev.Code),
				Pressed: pressed,
				Time:    time.Duration(ev.Time.Nano()),
			}, d.done)
			if !sent {
				return
			}
		}
	}()
	return d, nil
}

// device stops the reader goroutine even while it waits on a full queue.
type device struct {
	*os.File
	done chan struct{}
	once sync.Once
}

func (d *device) Close() error {
	d.once.Do(func() { close(d.done) })
	return d.File.Close()
}
