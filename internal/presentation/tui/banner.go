package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the Sara ASCII banner with a warm gradient.
func PrintBanner() {
	p := termenv.ColorProfile()
	s1 := termenv.String("  ____                  ").Foreground(p.Color("#f472b6"))
	s2 := termenv.String(" / ___|  __ _ _ __ __ _ ").Foreground(p.Color("#fb7185"))
	s3 := termenv.String(" \\___ \\ / _` | '__/ _` |").Foreground(p.Color("#fb923c"))
	s4 := termenv.String("  ___) | (_| | | | (_| |").Foreground(p.Color("#fbbf24"))
	s5 := termenv.String(" |____/ \\__,_|_|  \\__,_|").Foreground(p.Color("#facc15"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
