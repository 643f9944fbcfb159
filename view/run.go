package view

import "github.com/gdamore/tcell/v2"

// Run draws m on screen and handles keys until the user quits with q, Esc
// or Ctrl-C. The screen must already be initialized; Run does not finalize
// it.
func Run(screen tcell.Screen, m *Model) {
	for {
		screen.Clear()
		Render(screen, m)
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case nil:
			// screen finalized elsewhere
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyTab:
				m.Toggle()
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q', 'Q':
					return
				case ' ':
					m.Toggle()
				}
			}
		}
	}
}
