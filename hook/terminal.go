package hook

import (
	"context"
	"log"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keyclack/keycode"
)

// TerminalSource reads keys typed into the controlling terminal.
// It only sees input while the terminal has focus; Ctrl+C ends Run.
type TerminalSource struct {
	newScreen func() (tcell.Screen, error)
	status    string
	logger    *log.Logger
}

// NewTerminalSource creates a source on the process terminal
func NewTerminalSource(opts Options) *TerminalSource {
	return &TerminalSource{
		newScreen: tcell.NewScreen,
		status:    opts.Status,
		logger:    opts.logger(),
	}
}

// WithScreen replaces the screen constructor, used with simulation screens
func (s *TerminalSource) WithScreen(newScreen func() (tcell.Screen, error)) *TerminalSource {
	s.newScreen = newScreen
	return s
}

func (s *TerminalSource) Name() string { return "terminal" }

func (s *TerminalSource) Run(ctx context.Context, h Handler) error {
	screen, err := s.newScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	s.draw(screen)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			s.draw(screen)
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				s.logger.Printf("[hook] ctrl+c from terminal")
				return nil
			}
			h(terminalKey(ev.Key(), ev.Rune()))
		}
	}
}

func (s *TerminalSource) draw(screen tcell.Screen) {
	screen.Clear()
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	x := 0
	for _, r := range s.status + " (Ctrl+C to quit)" {
		screen.SetContent(x, 0, r, nil, style)
		x++
	}
	screen.Show()
}

var _ Source = (*TerminalSource)(nil)

// terminalNamed maps tcell special keys. Tab, Enter, Esc and both backspaces
// are ASCII control keys in tcell and are listed here under their own names.
var terminalNamed = map[tcell.Key]keycode.Key{
	tcell.KeyEsc:        keycode.KeyEscape,
	tcell.KeyEnter:      keycode.KeyReturn,
	tcell.KeyTab:        keycode.KeyTab,
	tcell.KeyBacktab:    keycode.KeyTab,
	tcell.KeyBackspace:  keycode.KeyBackspace,
	tcell.KeyBackspace2: keycode.KeyBackspace,
	tcell.KeyInsert:     keycode.KeyInsert,
	tcell.KeyDelete:     keycode.KeyDelete,
	tcell.KeyHome:       keycode.KeyHome,
	tcell.KeyEnd:        keycode.KeyEnd,
	tcell.KeyPgUp:       keycode.KeyPageUp,
	tcell.KeyPgDn:       keycode.KeyPageDown,
	tcell.KeyUp:         keycode.KeyUpArrow,
	tcell.KeyDown:       keycode.KeyDownArrow,
	tcell.KeyLeft:       keycode.KeyLeftArrow,
	tcell.KeyRight:      keycode.KeyRightArrow,
	tcell.KeyPrint:      keycode.KeyPrintScreen,
	tcell.KeyPause:      keycode.KeyPause,
	tcell.KeyF1:         keycode.KeyF1,
	tcell.KeyF2:         keycode.KeyF2,
	tcell.KeyF3:         keycode.KeyF3,
	tcell.KeyF4:         keycode.KeyF4,
	tcell.KeyF5:         keycode.KeyF5,
	tcell.KeyF6:         keycode.KeyF6,
	tcell.KeyF7:         keycode.KeyF7,
	tcell.KeyF8:         keycode.KeyF8,
	tcell.KeyF9:         keycode.KeyF9,
	tcell.KeyF10:        keycode.KeyF10,
	tcell.KeyF11:        keycode.KeyF11,
	tcell.KeyF12:        keycode.KeyF12,
}

// terminalRunes maps printable runes to the physical key on a US layout.
// Shifted symbols report their base key.
var terminalRunes = map[rune]keycode.Key{
	'a': keycode.KeyA, 'b': keycode.KeyB, 'c': keycode.KeyC, 'd': keycode.KeyD,
	'e': keycode.KeyE, 'f': keycode.KeyF, 'g': keycode.KeyG, 'h': keycode.KeyH,
	'i': keycode.KeyI, 'j': keycode.KeyJ, 'k': keycode.KeyK, 'l': keycode.KeyL,
	'm': keycode.KeyM, 'n': keycode.KeyN, 'o': keycode.KeyO, 'p': keycode.KeyP,
	'q': keycode.KeyQ, 'r': keycode.KeyR, 's': keycode.KeyS, 't': keycode.KeyT,
	'u': keycode.KeyU, 'v': keycode.KeyV, 'w': keycode.KeyW, 'x': keycode.KeyX,
	'y': keycode.KeyY, 'z': keycode.KeyZ,

	'1': keycode.KeyNum1, '!': keycode.KeyNum1,
	'2': keycode.KeyNum2, '@': keycode.KeyNum2,
	'3': keycode.KeyNum3, '#': keycode.KeyNum3,
	'4': keycode.KeyNum4, '$': keycode.KeyNum4,
	'5': keycode.KeyNum5, '%': keycode.KeyNum5,
	'6': keycode.KeyNum6, '^': keycode.KeyNum6,
	'7': keycode.KeyNum7, '&': keycode.KeyNum7,
	'8': keycode.KeyNum8, '*': keycode.KeyNum8,
	'9': keycode.KeyNum9, '(': keycode.KeyNum9,
	'0': keycode.KeyNum0, ')': keycode.KeyNum0,

	'-': keycode.KeyMinus, '_': keycode.KeyMinus,
	'=': keycode.KeyEqual, '+': keycode.KeyEqual,
	'[': keycode.KeyLeftBracket, '{': keycode.KeyLeftBracket,
	']': keycode.KeyRightBracket, '}': keycode.KeyRightBracket,
	'\\': keycode.KeyBackSlash, '|': keycode.KeyBackSlash,
	';': keycode.KeySemiColon, ':': keycode.KeySemiColon,
	'\'': keycode.KeyQuote, '"': keycode.KeyQuote,
	'`': keycode.KeyBackQuote, '~': keycode.KeyBackQuote,
	',': keycode.KeyComma, '<': keycode.KeyComma,
	'.': keycode.KeyDot, '>': keycode.KeyDot,
	'/': keycode.KeySlash, '?': keycode.KeySlash,
	' ': keycode.KeySpace,
}

// terminalKey resolves a tcell key event; anything unrecognized is KeyUnknown
func terminalKey(key tcell.Key, r rune) keycode.Key {
	if key == tcell.KeyRune {
		if k, ok := terminalRunes[unicode.ToLower(r)]; ok {
			return k
		}
		return keycode.KeyUnknown
	}
	if k, ok := terminalNamed[key]; ok {
		return k
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if k, ok := terminalRunes[rune('a'+key-tcell.KeyCtrlA)]; ok {
			return k
		}
	}
	return keycode.KeyUnknown
}
