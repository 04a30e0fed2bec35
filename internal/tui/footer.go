package tui

import (
	"strings"
)

func renderFooter(keys keyMap, width int) string {
	parts := make([]string, 0, 5)
	for _, b := range keys.bindings() {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+helpDescStyle.Render(" "+h.Desc))
	}
	line := strings.Join(parts, helpDescStyle.Render("  "))
	return footerStyle.Width(max(1, width)).Render(line)
}

func renderStatusBar(status string, isErr bool, width int) string {
	msg := strings.TrimSpace(status)
	if msg == "" {
		msg = "Ready"
	}
	if isErr {
		return statusErrBarStyle.Width(max(1, width)).Render(msg)
	}
	return statusBarStyle.Width(max(1, width)).Render(msg)
}
