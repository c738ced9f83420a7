package printer

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func PrintInfo(msg string) {
	fmt.Fprintln(os.Stdout, infoStyle.Render("ℹ "+msg))
}

func PrintSuccess(msg string) {
	fmt.Fprintln(os.Stdout, successStyle.Render("✓ "+msg))
}
