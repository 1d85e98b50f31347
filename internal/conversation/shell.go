package conversation

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/hammamikhairi/petitsplats/internal/display"
	"github.com/hammamikhairi/petitsplats/internal/domain"
	"github.com/hammamikhairi/petitsplats/internal/export"
	"github.com/hammamikhairi/petitsplats/internal/logger"
	"github.com/hammamikhairi/petitsplats/internal/session"
)

// Session is the part of session.Controller the shell drives.
type Session interface {
	Submit(query string) error
	Toggle(d domain.Dimension, value string) error
	ClearSearch() error
	ClearFilters() error
	SearchOptions(d domain.Dimension, query string) ([]string, error)
	Snapshot() session.Snapshot
}

var _ Session = (*session.Controller)(nil)

var helpLines = []string{
	"<texte>              rechercher (3 caractères minimum)",
	":i <ingrédient>      ajouter ou retirer un ingrédient",
	":a <appareil>        ajouter ou retirer un appareil",
	":u <ustensile>       ajouter ou retirer un ustensile",
	":options <i|a|u> [q] lister les valeurs disponibles",
	":clear               effacer la recherche",
	":reset               retirer tous les filtres",
	":export <fichier>    exporter les recettes visibles (.xlsx ou .csv)",
	":status              état de la session",
	":quit                quitter",
}

// Shell applies parsed lines to a session and prints command output.
type Shell struct {
	parser  *CommandParser
	sess    Session
	printFn PrintFunc
	log     *logger.Logger
}

// NewShell creates a shell over sess.
func NewShell(sess Session, printFn PrintFunc, log *logger.Logger) *Shell {
	return &Shell{
		parser:  NewCommandParser(log),
		sess:    sess,
		printFn: printFn,
		log:     log,
	}
}

// Handle runs one line. It reports whether the user asked to quit.
func (s *Shell) Handle(line string) bool {
	cmd, err := s.parser.Parse(line)
	if err != nil {
		s.fail(err)
		return false
	}

	switch cmd.Type {
	case domain.CommandQuery:
		err = s.sess.Submit(cmd.Payload)
	case domain.CommandToggle:
		err = s.sess.Toggle(cmd.Dimension, cmd.Payload)
	case domain.CommandOptions:
		err = s.printOptions(cmd.Dimension, cmd.Payload)
	case domain.CommandClearSearch:
		err = s.sess.ClearSearch()
	case domain.CommandResetFilters:
		err = s.sess.ClearFilters()
	case domain.CommandExport:
		err = s.export(cmd.Payload)
	case domain.CommandStatus:
		s.printStatus()
	case domain.CommandHelp:
		for _, l := range helpLines {
			s.printFn("  %s", l)
		}
	case domain.CommandQuit:
		return true
	default:
		if cmd.Payload != "" {
			s.printFn("%sCommande inconnue %q, tapez :help%s", yellow, cmd.Payload, reset)
		}
	}

	if err != nil {
		s.fail(err)
	}
	return false
}

func (s *Shell) fail(err error) {
	s.log.Warn("command failed: %v", err)
	s.printFn("%s%s%s", red, err, reset)
}

func (s *Shell) printOptions(d domain.Dimension, query string) error {
	values, err := s.sess.SearchOptions(d, query)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		s.printFn("%s: aucune valeur", display.DimensionTitle(d))
		return nil
	}
	s.printFn("%s (%d): %s", display.DimensionTitle(d), len(values), strings.Join(values, ", "))
	return nil
}

func (s *Shell) export(path string) error {
	visible := s.sess.Snapshot().Result.Visible
	if err := export.WriteFile(path, visible); err != nil {
		return err
	}
	s.log.Info("exported %d recipes to %s", len(visible), path)
	s.printFn("%d recettes exportées vers %s", len(visible), path)
	return nil
}

func (s *Shell) printStatus() {
	snap := s.sess.Snapshot()
	s.printFn("recherche: %q (%s, active=%t)", snap.Query, snap.State, snap.Result.Search.Active)
	s.printFn("visibles: %d", len(snap.Result.Visible))
	for _, d := range domain.Dimensions {
		if sel := snap.Selected[d]; len(sel) > 0 {
			s.printFn("%s: %s", display.DimensionTitle(d), strings.Join(sel, ", "))
		}
	}
}

// Run handles lines until quit, ctx cancellation or the end of lines.
func (s *Shell) Run(ctx context.Context, lines <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok || s.Handle(line) {
				return
			}
		}
	}
}

// ScanLines streams the lines of r. The channel closes at EOF.
func ScanLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}
