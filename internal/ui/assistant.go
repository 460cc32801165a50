package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
	"github.com/zalando/go-keyring"
)

// Publisher receives a fresh calendar after every change to the book.
type Publisher interface {
	Publish(data []byte)
}

// Assistant is the interactive command loop. It owns the address book and is
// the only goroutine that mutates it.
type Assistant struct {
	Book      *addressbook.Book
	Scheduler *engine.Scheduler
	Calendar  *engine.CalendarBuilder
	Importer  *engine.Importer
	Msg       *Messages

	// Feed is optional; nil disables publishing.
	Feed Publisher

	// ImportUser is sent as basic auth user for remote imports. The password
	// is looked up with Secrets.
	ImportUser string
	Secrets    func(user string) (string, error)
}

// NewAssistant wires an empty book to the scheduler and calendar builder.
func NewAssistant(clock engine.Clock, mode engine.WindowMode, msg *Messages) *Assistant {
	a := &Assistant{
		Book:      addressbook.New(),
		Scheduler: &engine.Scheduler{Clock: clock, Mode: mode},
		Importer:  &engine.Importer{},
		Msg:       msg,
		Secrets:   keyringSecret,
	}
	a.Calendar = &engine.CalendarBuilder{
		Clock:         clock,
		FormatSummary: a.eventSummary,
	}
	return a
}

func keyringSecret(user string) (string, error) {
	return keyring.Get(config.KeyringService, user)
}

// Run reads commands from in and writes replies to out until the user quits,
// the input ends or ctx is cancelled.
func (a *Assistant) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, config.ChannelBufferSize)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	_, _ = fmt.Fprintln(out, a.Msg.Get(config.TKeyWelcome))
	for {
		_, _ = fmt.Fprint(out, config.Prompt)

		select {
		case <-ctx.Done():
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
			return nil

		case line, ok := <-lines:
			if !ok {
				// readErr is filled before lines is closed; Scanner.Err is nil at EOF.
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("%s: %w", config.ErrReadInput, err)
					}
				default:
				}
				return nil
			}
			reply, quit := a.Handle(ctx, line)
			if reply != "" {
				_, _ = fmt.Fprintln(out, reply)
			}
			if quit {
				return nil
			}
		}
	}
}

// Handle executes one input line and returns the reply. quit is true after
// close or exit.
func (a *Assistant) Handle(ctx context.Context, line string) (reply string, quit bool) {
	cmd, args := parseInput(line)
	if cmd == "" {
		return a.Msg.Get(config.TKeyEnterCommand), false
	}

	slog.Debug(config.MsgCommand,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCommand, cmd,
		config.LogKeyArgs, len(args),
	)

	var (
		out      string
		err      error
		mutating bool
	)

	switch cmd {
	case config.CmdClose, config.CmdExit:
		return a.Msg.Get(config.TKeyGoodbye), true
	case config.CmdHello:
		out = a.Msg.Get(config.TKeyHello)
	case config.CmdHelp:
		out = a.Msg.Get(config.TKeyHelp)
	case config.CmdAdd:
		out, err = a.addContact(args)
		mutating = true
	case config.CmdChange:
		out, err = a.changeContact(args)
		mutating = true
	case config.CmdPhone:
		out, err = a.showPhone(args)
	case config.CmdAll:
		out = a.showAll()
	case config.CmdAddBirthday:
		out, err = a.addBirthday(args)
		mutating = true
	case config.CmdShowBirthday:
		out, err = a.showBirthday(args)
	case config.CmdBirthdays:
		out = a.birthdays()
	case config.CmdDelete:
		out, err = a.deleteContact(args)
		mutating = true
	case config.CmdRemovePhone:
		out, err = a.removePhone(args)
	case config.CmdVCard:
		out, err = a.showVCard(args)
	case config.CmdImport:
		out, err = a.importContacts(ctx, args)
		mutating = true
	case config.CmdCalendar:
		out, err = a.showCalendar()
	default:
		return a.Msg.Get(config.TKeyInvalidCommand), false
	}

	if err != nil {
		slog.Debug(config.MsgCommandFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyCommand, cmd,
			config.LogKeyError, err,
		)
		return a.describe(cmd, err), false
	}
	if mutating {
		a.Publish()
	}
	return out, false
}

// Publish rebuilds the calendar and hands it to Feed.
func (a *Assistant) Publish() {
	if a.Feed == nil {
		return
	}
	data, count, err := a.Calendar.Build(a.Book.Records())
	if err != nil {
		slog.Error(config.ErrCalendarPublish,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err,
		)
		return
	}
	a.Feed.Publish(data)
	slog.Debug(config.MsgCalendarBuilt,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, count,
	)
}

var usageKeys = map[string]string{
	config.CmdAdd:         config.TKeyUsageAdd,
	config.CmdChange:      config.TKeyUsageChange,
	config.CmdAddBirthday: config.TKeyUsageAddBirthday,
	config.CmdRemovePhone: config.TKeyUsageRemovePhone,
	config.CmdImport:      config.TKeyUsageImport,
}

// describe turns a command failure into the sentence shown to the user.
func (a *Assistant) describe(cmd string, err error) string {
	var key string
	switch {
	case errors.Is(err, addressbook.ErrPhoneNotFound):
		return a.Msg.Get(config.TKeyErrPhoneNF)
	case errors.Is(err, addressbook.ErrNotFound):
		return a.Msg.Get(config.TKeyErrNotFound)
	case errors.Is(err, addressbook.ErrValidation):
		key = config.TKeyErrValidation
	case errors.Is(err, addressbook.ErrMissingArgument):
		key = config.TKeyErrMissingArg
	case cmd == config.CmdImport:
		return a.Msg.Format(config.TKeyErrImport, map[string]any{"Error": err.Error()})
	default:
		return a.Msg.Format(config.TKeyErrUnexpected, map[string]any{"Error": err.Error()})
	}

	msg := a.Msg.Get(key)
	if usage, ok := usageKeys[cmd]; ok {
		msg += " " + a.Msg.Get(usage)
	}
	return msg
}

// parseInput splits a line on whitespace and lowercases the command word.
func parseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}
