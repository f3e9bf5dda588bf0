package input

import (
	"fmt"
	"strings"
)

// Action is a bindable gameplay control.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBack
	ActionLeft
	ActionRight
	ActionJump
)

var actionNames = map[Action]string{
	ActionForward: "forward",
	ActionBack:    "back",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionJump:    "jump",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "none"
}

// Actions returns every bindable action in a stable order.
func Actions() []Action {
	return []Action{ActionForward, ActionBack, ActionLeft, ActionRight, ActionJump}
}

// ParseAction resolves a config name ("forward", "JUMP") to an Action.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("input: unknown action %q", name)
}
