package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/handiism/student-records/internal/config"
	"github.com/handiism/student-records/internal/model"
	"github.com/handiism/student-records/internal/report"
	"github.com/handiism/student-records/internal/store"
)

// Prompts shown to the operator.
const (
	promptChoice   = "Choose an option: "
	promptID       = "Enter Student ID: "
	promptName     = "Enter Name: "
	promptSubjects = "Enter Subjects (comma-separated): "
	promptSearch   = "Enter Student ID to search: "
	promptSave     = "Enter the filename to save records (e.g., students.json): "
	promptLoad     = "Enter the filename to load records from (e.g., students.json): "
	promptPause    = "Press enter to continue. "
)

// Shell runs the numbered menu over a reader and a writer.
//
// Shell implements store.MarkPrompter so that Store.Add can ask for marks
// on the same input stream.
type Shell struct {
	store    *store.Store
	settings *config.Settings
	renderer *report.TableRenderer
	in       *bufio.Reader
	out      io.Writer
	logger   *zap.Logger
}

// New creates a shell over in and out. A nil logger disables logging.
func New(st *store.Store, settings *config.Settings, in io.Reader, out io.Writer, logger *zap.Logger) (*Shell, error) {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	renderer, err := report.NewTableRenderer(settings.TableBorder)
	if err != nil {
		return nil, err
	}

	return &Shell{
		store:    st,
		settings: settings,
		renderer: renderer,
		in:       bufio.NewReader(in),
		out:      out,
		logger:   logger.Named("shell"),
	}, nil
}

// Run prints the welcome banner and serves the menu until the operator
// chooses Exit, the input ends or ctx is cancelled.
//
// End of input is a normal way to leave and returns nil.
func (s *Shell) Run(ctx context.Context) error {
	s.println(MsgWelcome)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		line, err := s.readLine(promptChoice)
		if err != nil {
			return s.finish(err)
		}

		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case convErr != nil:
			s.println(MsgInvalidInput)
		case Op(choice) == OpExit:
			s.println(MsgGoodbye)
			return nil
		case choice < int(OpAdd) || choice > int(OpExit):
			s.println(MsgInvalidMenu)
		default:
			s.logger.Debug("menu choice", zap.Int("choice", choice))
			if err := s.dispatch(ctx, Op(choice)); err != nil {
				return s.finish(err)
			}
		}

		if s.settings.PauseAfterOperation {
			if _, err := s.readLine(promptPause); err != nil {
				return s.finish(err)
			}
		}
	}
}

// dispatch runs one operation. Only input errors are returned; operation
// failures are reported to the operator.
func (s *Shell) dispatch(ctx context.Context, op Op) error {
	switch op {
	case OpAdd:
		return s.add()
	case OpView:
		s.view()
	case OpSearch:
		return s.search()
	case OpTop:
		s.top()
	case OpSave:
		return s.save(ctx)
	case OpLoad:
		return s.load(ctx)
	}
	return nil
}

func (s *Shell) add() error {
	id, err := s.readLine(promptID)
	if err != nil {
		return err
	}
	if s.store.Exists(id) {
		s.report(Failure(OpAdd, store.ErrDuplicateID))
		return nil
	}

	name, err := s.readLine(promptName)
	if err != nil {
		return err
	}
	subjects, err := s.readLine(promptSubjects)
	if err != nil {
		return err
	}

	if _, err := s.store.Add(id, name, model.SplitSubjects(subjects), s); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		s.report(Failure(OpAdd, err))
		return nil
	}
	s.println(MsgAdded)
	return nil
}

func (s *Shell) view() {
	students, err := s.store.All()
	if err != nil {
		s.report(Failure(OpView, err))
		return
	}
	s.println(s.renderer.Render(students))
}

func (s *Shell) search() error {
	id, err := s.readLine(promptSearch)
	if err != nil {
		return err
	}

	student, err := s.store.FindByID(id)
	if err != nil {
		s.report(Failure(OpSearch, err))
		return nil
	}
	s.println(s.renderer.Render([]*model.Student{student}))
	return nil
}

func (s *Shell) top() {
	students, _, err := s.store.TopPerformers()
	if err != nil {
		s.report(Failure(OpTop, err))
		return
	}
	s.println(MsgTopHeader)
	s.println(s.renderer.Render(students))
}

func (s *Shell) save(ctx context.Context) error {
	path, err := s.readLine(promptSave)
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)

	if err := s.store.Save(ctx, path); err != nil {
		s.report(Failure(OpSave, err))
		return nil
	}
	s.report(Saved(path))
	return nil
}

func (s *Shell) load(ctx context.Context) error {
	path, err := s.readLine(promptLoad)
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)

	if err := s.store.Load(ctx, path); err != nil {
		s.report(Failure(OpLoad, err))
		return nil
	}
	s.report(Loaded(path))
	return nil
}

// PromptMark asks for the mark of subject on the shell's input.
func (s *Shell) PromptMark(subject string) (string, error) {
	return s.readLine("Enter marks for " + subject + ": ")
}

// RejectMark prints why the last mark was not accepted.
func (s *Shell) RejectMark(subject string, err error) {
	s.println(MarkRejected(err))
}

func (s *Shell) printMenu() {
	s.println("\nMenu:")
	for i, item := range menuItems {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, item)
	}
}

// readLine prints prompt and returns the next input line without its line
// terminator. A final line without a newline is returned normally; io.EOF is
// returned only when no input is left.
func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)

	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// finish ends Run after an input error.
func (s *Shell) finish(err error) error {
	if errors.Is(err, io.EOF) {
		s.println("")
		s.logger.Debug("input closed")
		return nil
	}
	return err
}

func (s *Shell) report(e Event) {
	if e.Level == LevelError {
		s.logger.Debug("operation failed", zap.String("message", e.Message))
	}
	s.println(e.Message)
}

func (s *Shell) println(msg string) {
	fmt.Fprintln(s.out, msg)
}
