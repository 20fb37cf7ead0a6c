package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// NewTerminalScreen opens and initializes the terminal. The caller must
// call Fini on the returned screen.
func NewTerminalScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	screen.EnablePaste()
	return screen, nil
}
