package main

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// ANSI escape codes
const (
	clearLine = "\033[2K"
	moveUp    = "\033[%dA"
	reset     = "\033[0m"
	yellow    = "\033[33m"
	red       = "\033[31m"
	blue      = "\033[34m"
	green     = "\033[32m"
	cyan      = "\033[36m"
	bold      = "\033[1m"
)

const bannerWidth = 62

var logo = []string{
	`        _____     _       ____       _                     `,
	`       |_   _|__ | |_ ___| __ )  ___| |_                   `,
	`         | |/ _ \| __/ _ \  _ \ / _ \ __|                  `,
	`         | | (_) | ||  __/ |_) |  __/ |_                   `,
	`         |_|\___/ \__\___|____/ \___|\__|                  `,
}

var runners = []struct {
	art   string
	color string
}{
	{`>=(1)>`, red},
	{`>=(2)>`, blue},
	{`>=(3)>`, green},
}

// showStartupAnimation draws the logo and, unless skipRace is set, a short
// three-runner race underneath it
func showStartupAnimation(skipRace bool) {
	border := strings.Repeat("═", bannerWidth)

	fmt.Printf("\n  %s╔%s╗%s\n", cyan, border, reset)
	for _, line := range logo {
		fmt.Printf("  %s║%s%-*s%s║%s\n", cyan, yellow, bannerWidth, line, cyan, reset)
	}
	fmt.Printf("  %s╚%s╝%s\n", cyan, border, reset)

	if skipRace {
		fmt.Print("\n")
		return
	}

	// Turn the bottom border into a divider and draw the track below it
	fmt.Printf(moveUp, 1)
	fmt.Printf("%s  %s╠%s╣%s\n", clearLine, cyan, border, reset)
	for range runners {
		fmt.Printf("  %s║%s║%s\n", cyan, strings.Repeat(" ", bannerWidth), reset)
	}
	fmt.Printf("  %s╚%s╝%s\n", cyan, border, reset)

	artLen := len(runners[0].art)
	finish := bannerWidth - artLen
	speeds := []int{3, 4, 5}
	rand.Shuffle(len(speeds), func(i, j int) { speeds[i], speeds[j] = speeds[j], speeds[i] })

	positions := make([]int, len(runners))
	finishedAt := make([]int, len(runners))
	const frames = 20
	for frame := 0; frame < frames; frame++ {
		fmt.Printf(moveUp, len(runners)+1)
		for i, r := range runners {
			if positions[i] < finish {
				positions[i] = min(positions[i]+speeds[i], finish)
				finishedAt[i] = frame
			}
			fmt.Printf("%s  %s║%s%s%s%s%s║%s\n", clearLine, cyan,
				strings.Repeat(" ", positions[i]), r.color, r.art, cyan,
				strings.Repeat(" ", bannerWidth-positions[i]-artLen), reset)
		}
		fmt.Printf("%s  %s╚%s╝%s\n", clearLine, cyan, border, reset)
		time.Sleep(80 * time.Millisecond)
	}

	winner := 0
	for i := range runners {
		if finishedAt[i] < finishedAt[winner] {
			winner = i
		}
	}
	fmt.Printf("\n  %s%sRunner %d wins the warm-up%s\n\n", bold, yellow, winner+1, reset)
}
