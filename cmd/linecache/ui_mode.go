package main

import (
	"fmt"
	"os"
	"strings"
)

// toggle is an auto|on|off switch; auto follows whether the output is a terminal.
type toggle string

const (
	toggleAuto toggle = "auto"
	toggleOn   toggle = "on"
	toggleOff  toggle = "off"
)

func parseToggle(flag, value string) (toggle, error) {
	switch t := toggle(strings.TrimSpace(strings.ToLower(value))); t {
	case "":
		return toggleAuto, nil
	case toggleAuto, toggleOn, toggleOff:
		return t, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

func (t toggle) enabled(out *os.File) bool {
	if t == toggleAuto {
		return isTerminal(out)
	}
	return t == toggleOn
}
