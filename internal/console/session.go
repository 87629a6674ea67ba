// Package console runs a hot-seat Clue game in a terminal.
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"clue/internal/app"
	"clue/internal/domain"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
)

var (
	errUnknownCommand = errors.New("unknown command, type help for the list")
	errUsage          = errors.New("usage")
)

// LineReader supplies one command line per call. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

type historyAppender interface {
	AppendHistory(item string)
}

// Session binds one game to a terminal.
type Session struct {
	svc  *app.Service
	game *domain.Game
	out  io.Writer
	log  *logrus.Logger
	pal  palette
}

// NewSession prepares a session for game. A nil logger discards log output.
func NewSession(svc *app.Service, game *domain.Game, out io.Writer, logger *logrus.Logger, noColor bool) *Session {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	players := game.Players()
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return &Session{
		svc:  svc,
		game: game,
		out:  out,
		log:  logger,
		pal:  newPalette(names, noColor),
	}
}

// Show prints events as they would appear on the shared screen.
func (s *Session) Show(events []app.Event) {
	for _, ev := range events {
		s.log.WithFields(logrus.Fields{"event": ev.Kind, "recipients": ev.Recipients}).Debug("event")
		text, c := describe(ev, s.pal)
		if text == "" {
			continue
		}
		if ev.Private() {
			text += fmt.Sprintf(" (for %s only)", strings.Join(ev.Recipients, ", "))
		}
		c.Fprintln(s.out, text)
	}
}

// Run reads commands until the game ends, the reader is exhausted or the
// user quits.
func (s *Session) Run(in LineReader) error {
	renderBoard(s.out, s.game, s.pal)
	renderStatus(s.out, s.game, s.pal)
	s.pal.Dim.Fprintln(s.out, "Type help for the list of commands.")

	for !s.game.IsGameOver() {
		line, err := in.Prompt(s.prompt())
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if h, ok := in.(historyAppender); ok {
			h.AppendHistory(line)
		}

		quit, err := s.Execute(line)
		if err != nil {
			s.log.WithError(err).WithField("line", line).Debug("command rejected")
			s.pal.Bad.Fprintf(s.out, "! %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return nil
}

func (s *Session) prompt() string {
	return fmt.Sprintf("%s [%s]> ", s.game.CurrentPlayer().Name, s.game.Phase())
}

// Execute runs one command line on behalf of the current player.
func (s *Session) Execute(line string) (quit bool, err error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	actor := s.game.CurrentPlayer().Name
	s.log.WithFields(logrus.Fields{"player": actor, "command": name}).Debug("command")

	switch strings.ToLower(name) {
	case "":
		return false, nil
	case "roll":
		return false, s.roll(actor)
	case "move", "m":
		return false, s.move(actor, rest)
	case "suggest":
		return false, s.suggest(actor, rest)
	case "accuse":
		return false, s.accuse(actor, rest)
	case "end", "pass":
		return false, s.end(actor)
	case "hand":
		renderHand(s.out, s.game, s.game.CurrentPlayer())
	case "notes":
		renderNotes(s.out, s.game, s.game.CurrentPlayer(), s.pal)
	case "note":
		return false, s.note(actor, rest)
	case "board":
		renderBoard(s.out, s.game, s.pal)
	case "status":
		renderStatus(s.out, s.game, s.pal)
	case "help", "?":
		renderHelp(s.out)
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", errUnknownCommand, name)
	}
	return false, nil
}

func (s *Session) roll(actor string) error {
	events, err := s.svc.RollDice(s.game, actor)
	if err != nil {
		return err
	}
	s.Show(events)
	return nil
}

// move takes up to steps single-cell moves, stopping early on a wall, a room
// entrance or an empty budget.
func (s *Session) move(actor, args string) error {
	fields := strings.Fields(args)
	if len(fields) == 0 || len(fields) > 2 {
		return fmt.Errorf("%w: move <up|down|left|right> [steps]", errUsage)
	}
	dir, err := parseDirection(fields[0])
	if err != nil {
		return err
	}
	steps := 1
	if len(fields) == 2 {
		steps, err = strconv.Atoi(fields[1])
		if err != nil || steps < 1 {
			return fmt.Errorf("%w: steps must be a positive number", errUsage)
		}
	}

	for i := 0; i < steps; i++ {
		events, err := s.svc.RequestMove(s.game, actor, dir)
		if err != nil {
			return err
		}
		s.Show(events)
		if events[0].Kind == app.EventMoveBlocked || s.game.Phase() != domain.PhaseMoving || s.game.MovesRemaining() == 0 {
			break
		}
	}
	if room, ok := s.game.CurrentRoom(); ok && !s.game.HasSuggested() {
		s.pal.Info.Fprintf(s.out, "You may suggest in the %s: suggest <suspect>, <weapon>\n", room)
	} else if s.game.Phase() == domain.PhaseMoving && s.game.MovesRemaining() == 0 {
		s.pal.Dim.Fprintln(s.out, "Out of moves. Type end to pass the turn.")
	}
	return nil
}

func (s *Session) suggest(actor, args string) error {
	parts := splitList(args)
	if len(parts) != 2 {
		return fmt.Errorf("%w: suggest <suspect>, <weapon>", errUsage)
	}
	suspect := s.resolveCard(domain.CategorySuspect, parts[0])
	weapon := s.resolveCard(domain.CategoryWeapon, parts[1])
	events, err := s.svc.Suggest(s.game, actor, suspect, weapon)
	if err != nil {
		return err
	}
	s.Show(events)
	return nil
}

func (s *Session) accuse(actor, args string) error {
	parts := splitList(args)
	if len(parts) != 3 {
		return fmt.Errorf("%w: accuse <suspect>, <weapon>, <room>", errUsage)
	}
	events, err := s.svc.Accuse(s.game, actor,
		s.resolveCard(domain.CategorySuspect, parts[0]),
		s.resolveCard(domain.CategoryWeapon, parts[1]),
		s.resolveCard(domain.CategoryRoom, parts[2]),
	)
	if err != nil {
		return err
	}
	s.Show(events)
	if s.game.IsGameOver() {
		renderGameOver(s.out, s.game, s.pal)
	} else if p, _ := s.game.Player(actor); p.Eliminated {
		s.pal.Warn.Fprintln(s.out, "You are out. Type end to pass the turn.")
	}
	return nil
}

func (s *Session) end(actor string) error {
	events, err := s.svc.AdvanceTurn(s.game, actor)
	if err != nil {
		return err
	}
	s.Show(events)
	if s.game.IsGameOver() {
		renderGameOver(s.out, s.game, s.pal)
	}
	return nil
}

// note expects "<category> <item...> <on|off>".
func (s *Session) note(actor, args string) error {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return fmt.Errorf("%w: note <suspect|weapon|room> <card> <on|off>", errUsage)
	}
	category, err := parseCategory(fields[0])
	if err != nil {
		return err
	}
	var marked bool
	switch strings.ToLower(fields[len(fields)-1]) {
	case "on", "x", "yes":
		marked = true
	case "off", "-", "no":
	default:
		return fmt.Errorf("%w: note ends with on or off", errUsage)
	}
	item := s.resolveCard(category, strings.Join(fields[1:len(fields)-1], " "))
	if err := s.svc.SetNote(s.game, actor, category, item, marked); err != nil {
		return err
	}
	state := "open"
	if marked {
		state = "ruled out"
	}
	s.pal.Dim.Fprintf(s.out, "Noted %s: %s\n", item, state)
	return nil
}

// resolveCard maps user input onto a card name: exact match ignoring case,
// then a unique prefix. Anything else is returned unchanged for the game to
// reject.
func (s *Session) resolveCard(category domain.Category, input string) string {
	input = strings.TrimSpace(input)
	lower := strings.ToLower(input)
	var prefixed []string
	for _, item := range s.game.Cards().Items(category) {
		l := strings.ToLower(item)
		if l == lower {
			return item
		}
		if strings.HasPrefix(l, lower) {
			prefixed = append(prefixed, item)
		}
	}
	if len(prefixed) == 1 && lower != "" {
		return prefixed[0]
	}
	return input
}

func splitList(args string) []string {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	parts := strings.Split(args, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseDirection accepts a direction name or its first letter.
func parseDirection(s string) (domain.Direction, error) {
	lower := strings.ToLower(s)
	for _, d := range domain.Directions {
		if lower == string(d) || lower == string(d)[:1] {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownDirection, s)
}

func parseCategory(s string) (domain.Category, error) {
	lower := strings.ToLower(s)
	for _, c := range domain.Categories {
		if lower == string(c) || lower == string(c)+"s" {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownNote, s)
}

func renderHelp(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Commands")
	t.AppendHeader(table.Row{"Command", "Effect"})
	t.AppendRows([]table.Row{
		{"roll", "roll two dice for this turn's moves"},
		{"move <dir> [steps]", "walk up, down, left or right (u/d/l/r)"},
		{"suggest <suspect>, <weapon>", "suggest in the room you entered"},
		{"accuse <suspect>, <weapon>, <room>", "name the solution; wrong means you are out"},
		{"end", "pass the turn"},
		{"hand", "show the current player's cards"},
		{"notes", "show the current player's notepad"},
		{"note <type> <card> <on|off>", "mark a card as ruled out or open"},
		{"board", "draw the board"},
		{"status", "list players and whose turn it is"},
		{"quit", "leave the game"},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
