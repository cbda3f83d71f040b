// Package shell implements the DexOS presentation shell: the boot text
// animation, the taskbar clock, the window manager, the page viewer and the
// shutdown flow. It is independent of the terminal toolkit; the platform
// layer drives it with timers and renders its state.
package shell

import (
	"strings"
	"time"
)

type bootPhase int

const (
	bootTyping bootPhase = iota
	bootLinePause
	bootFinalPause
	bootDone
)

// BootTimings controls the speed of the boot animation.
type BootTimings struct {
	CharDelay  time.Duration // Between two typed runes
	LinePause  time.Duration // After each completed line
	FinalPause time.Duration // After the last line, before the desktop
}

// Boot is the typewriter animation shown before the desktop. It is advanced
// by calling Step after waiting Delay.
type Boot struct {
	lines   [][]rune
	timings BootTimings
	line    int
	col     int
	phase   bootPhase
	out     strings.Builder
}

// NewBoot creates a boot sequence for the given lines.
func NewBoot(lines []string, timings BootTimings) *Boot {
	b := &Boot{timings: timings}
	for _, l := range lines {
		b.lines = append(b.lines, []rune(l))
	}
	if len(b.lines) == 0 {
		b.phase = bootFinalPause
	}
	return b
}

// Delay returns how long to wait before the next Step. It is zero once the
// sequence is done.
func (b *Boot) Delay() time.Duration {
	switch b.phase {
	case bootTyping:
		return b.timings.CharDelay
	case bootLinePause:
		return b.timings.LinePause
	case bootFinalPause:
		return b.timings.FinalPause
	default:
		return 0
	}
}

// Step advances the animation by one event: a typed rune, the end of a line
// pause, or the end of the final pause.
func (b *Boot) Step() {
	switch b.phase {
	case bootTyping:
		line := b.lines[b.line]
		if b.col < len(line) {
			b.out.WriteRune(line[b.col])
			b.col++
		}
		if b.col >= len(line) {
			b.out.WriteByte('\n')
			b.phase = bootLinePause
		}
	case bootLinePause:
		b.line++
		b.col = 0
		if b.line >= len(b.lines) {
			b.phase = bootFinalPause
		} else {
			b.phase = bootTyping
		}
	case bootFinalPause:
		b.phase = bootDone
	}
}

// Skip completes the animation immediately.
func (b *Boot) Skip() {
	for !b.Done() {
		b.Step()
	}
}

// Done reports whether the desktop should be shown.
func (b *Boot) Done() bool {
	return b.phase == bootDone
}

// Text returns everything typed so far.
func (b *Boot) Text() string {
	return b.out.String()
}

// Progress returns the number of completed lines and the total.
func (b *Boot) Progress() (done, total int) {
	done = b.line
	if b.phase == bootLinePause {
		done++
	}
	return min(done, len(b.lines)), len(b.lines)
}
