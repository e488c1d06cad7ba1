package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	` _      __          ____         __        `,
	`| | /| / /__ ___ __/ _(_)__  ___/ /__ ____ `,
	`| |/ |/ / _ '/ // / _/ / _ \/ _  / -_) __/ `,
	`|__/|__/\_,_/\_, /_//_/_//_/\_,_/\__/_/    `,
	`            /___/                          `,
}

var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}

// PrintBanner writes the colored title and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i%len(bannerColors)])))
	}
	fmt.Fprintln(w, termenv.String("  pick the right crate  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
