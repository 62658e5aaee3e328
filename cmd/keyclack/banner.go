package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	appName  = "keyclack"
	packsURL = "https://docs.google.com/spreadsheets/d/1PimUN_Qn3CWqfn-93YdVW8OWy8nzpz3w3me41S8S494"
)

var version = "1.0.0"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B8B8B"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
)

func printBanner(w io.Writer) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s %s", appName, version)))
	fmt.Fprintln(w, "Mechanical keyboard sound imitator")
	fmt.Fprintf(w, "Usage: %s <pack-directory>\n", appName)
	fmt.Fprintln(w)
	fmt.Fprintln(w, hintStyle.Render("\t!! Provide the sound pack folder path as argument !!"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, mutedStyle.Render("Sound packs: "+packsURL))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, infoStyle.Render("[Info]")+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Unable to use the app further."))
	fmt.Fprintln(w, err.Error())
}
