package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

type helpSection struct {
	title string
	keys  [][2]string
}

var helpSections = []helpSection{
	{"Controls:", [][2]string{
		{"WASD + Mouse", "Pan camera"},
		{"Space/Shift", "Move up/down"},
		{"Mouse Wheel", "Zoom in/out"},
		{"ESC", "Toggle mouse capture"},
	}},
	{"Tessellation Controls:", [][2]string{
		{"1/2/3", "Domain (Triangles/Quads/Isolines)"},
		{"Q/E/R", "Spacing (Equal/FracEven/FracOdd)"},
		{"M", "Toggle wireframe mode"},
		{"+/-", "Increase/decrease LOD level"},
		{"H", "Toggle help"},
	}},
}

func writeBanner(w io.Writer, out *termenv.Output) {
	rule := strings.Repeat("=", 43)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, out.String("  OpenGL 4.1 Tessellation Demo - Go").Bold())
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	writeHelp(w, out)
}

func writeHelp(w io.Writer, out *termenv.Output) {
	for _, sec := range helpSections {
		fmt.Fprintln(w, out.String(sec.title).Bold())
		for _, kv := range sec.keys {
			key := out.String(fmt.Sprintf("%-15s", kv[0])).Foreground(out.Color("6"))
			fmt.Fprintf(w, "  %s - %s\n", key, kv[1])
		}
		fmt.Fprintln(w)
	}
}

func (a *App) toggleHelp() {
	a.showHelp = !a.showHelp
	if a.showHelp {
		writeHelp(a.console, a.term)
	} else {
		fmt.Fprintln(a.console, "Help hidden (press H to show)")
	}
}
