package layout

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/Luismorlan/ledger_in_go/commands"
	"github.com/jroimartin/gocui"
)

const (
	pastCmdView = "pastcommand"
	inputView   = "input"
	loggerView  = "logger"
	manualView  = "manual"
)

// Lines typed into the input box since the last layout, echoed by PastCmd.
type history struct {
	lines []string
	m     sync.Mutex
}

func (h *history) push(s string) {
	h.m.Lock()
	defer h.m.Unlock()
	h.lines = append(h.lines, s)
}

func (h *history) pop() []string {
	h.m.Lock()
	defer h.m.Unlock()
	lines := h.lines
	h.lines = nil
	return lines
}

// PastCmd is the ViewManager that logs past commands.
type PastCmd struct {
	name    string
	history *history
}

// Input box for node commands.
type FullNodeInput struct {
	name    string
	cmd     chan commands.Command
	history *history
}

// Input box for wallet commands.
type WalletInput struct {
	name    string
	cmd     chan commands.ClientCommand
	history *history
}

type Logger struct {
	name string
}

// Manual shows the usage file.
type Manual struct {
	name string
	text string
}

func (pc *PastCmd) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Bottom left corner.
	v, err := g.SetView(pc.name, 1, maxY*2/3, maxX/3, maxY-6)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Autoscroll = true
	v.Wrap = true
	for _, l := range pc.history.pop() {
		fmt.Fprintln(v, "> "+l)
	}
	return nil
}

func inputLayout(g *gocui.Gui, name string, e gocui.Editor) error {
	maxX, maxY := g.Size()
	v, err := g.SetView(name, 1, maxY-5, maxX-1, maxY-1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Wrap = true
	v.Autoscroll = true
	v.Editor = e
	v.Editable = true
	return nil
}

func (i *FullNodeInput) Layout(g *gocui.Gui) error {
	return inputLayout(g, i.name, i)
}

func (w *WalletInput) Layout(g *gocui.Gui) error {
	return inputLayout(g, w.name, w)
}

func (l *Logger) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Right half.
	v, err := g.SetView(l.name, maxX/3+1, 1, maxX-1, maxY-6)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Autoscroll = true
	v.Wrap = true
	return nil
}

func (m *Manual) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Top left corner.
	v, err := g.SetView(m.name, 1, 1, maxX/3, maxY*2/3-1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Wrap = true
	v.Clear()
	fmt.Fprintln(v, m.text)
	return nil
}

// Read the input line and reset the box. ok is false when nothing was submitted.
func editLine(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) (line string, ok bool) {
	switch {
	case key == gocui.KeyEnter:
		s := strings.Replace(v.Buffer(), "\n", "", -1)
		v.Clear()
		v.SetOrigin(0, 0)
		v.SetCursor(0, 0)
		return s, true
	case ch != 0 && mod == 0:
		v.EditWrite(ch)
	case key == gocui.KeySpace:
		v.EditWrite(' ')
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		v.EditDelete(true)
	}
	return "", false
}

func (i *FullNodeInput) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	s, ok := editLine(v, key, ch, mod)
	if !ok {
		return
	}
	op, err := commands.CreateCommand(s)
	if err != nil {
		i.history.push(s + "\n" + err.Error())
		return
	}
	i.history.push(s)
	// The handler may be busy, never block the UI loop.
	go func() { i.cmd <- op }()
}

func (w *WalletInput) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	s, ok := editLine(v, key, ch, mod)
	if !ok {
		return
	}
	op, err := commands.CreateClientCommand(s)
	if err != nil {
		w.history.push(s + "\n" + err.Error())
		return
	}
	w.history.push(s)
	go func() { w.cmd <- op }()
}

func SetFocus(name string) func(g *gocui.Gui) error {
	return func(g *gocui.Gui) error {
		_, err := g.SetCurrentView(name)
		return err
	}
}

// viewWriter appends everything written to it to a view.
type viewWriter struct {
	g    *gocui.Gui
	name string
}

func (w *viewWriter) Write(p []byte) (int, error) {
	s := string(p)
	w.g.Update(func(g *gocui.Gui) error {
		v, err := g.View(w.name)
		if err != nil {
			// Not laid out yet, drop the line.
			return nil
		}
		fmt.Fprint(v, s)
		return nil
	})
	return len(p), nil
}

// LogWriter returns a writer that prints into the logger view of g, for log.SetOutput.
func LogWriter(g *gocui.Gui) io.Writer {
	return &viewWriter{g: g, name: loggerView}
}

// Create a GUI, using the command channel to pass commands to the full node or the wallet.
// manualPath is the usage file shown in the manual view.
func CreateGui(cmd interface{}, manualPath string) (*gocui.Gui, error) {
	dat, err := os.ReadFile(manualPath)
	if err != nil {
		return nil, err
	}

	h := &history{}
	var input gocui.Manager
	switch c := cmd.(type) {
	case chan commands.Command:
		input = &FullNodeInput{name: inputView, cmd: c, history: h}
	case chan commands.ClientCommand:
		input = &WalletInput{name: inputView, cmd: c, history: h}
	default:
		return nil, fmt.Errorf("invalid command channel %T", cmd)
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, err
	}
	g.Cursor = true

	pc := &PastCmd{name: pastCmdView, history: h}
	l := &Logger{name: loggerView}
	m := &Manual{name: manualView, text: string(dat)}
	focus := gocui.ManagerFunc(SetFocus(inputView))
	g.SetManager(pc, input, l, m, focus)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		log.Panicln(err)
	}
	return g, nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
