package render

import (
	"fmt"
	"strings"
)

// InputMode is the play input method a render is recorded with.
type InputMode int

// Input modes, in the order the editor lists them.
const (
	InputModeTouch InputMode = iota
	InputModeMouse
	InputModeKeyboard
	InputModeController
	InputModeAuto
	InputModeAutoController
)

var inputModeNames = map[InputMode]string{
	InputModeTouch:          "Touch",
	InputModeMouse:          "Mouse",
	InputModeKeyboard:       "Keyboard",
	InputModeController:     "Controller",
	InputModeAuto:           "Auto",
	InputModeAutoController: "AutoController",
}

// String implements fmt.Stringer.
func (m InputMode) String() string {
	if name, ok := inputModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("InputMode(%d)", int(m))
}

// IsAutomated reports whether notes are played automatically. Hit sounds are
// only rendered for automated play; a human player's own input sounds are
// not part of the recording.
func (m InputMode) IsAutomated() bool {
	return m == InputModeAuto || m == InputModeAutoController
}

// ParseInputMode parses a mode name case-insensitively. "auto-controller"
// and "auto_controller" are accepted for AutoController.
func ParseInputMode(s string) (InputMode, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for mode, name := range inputModeNames {
		if strings.ToLower(name) == key {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInputMode, s)
}
