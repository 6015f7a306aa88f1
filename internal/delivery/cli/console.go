// Package cli drives the shop from a text menu on a terminal.
package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"supermarket/internal/delivery"
	deliverycontext "supermarket/internal/delivery/context"
	"supermarket/internal/domain/entity"
	"supermarket/internal/errors"
	"supermarket/internal/usecase"
	"supermarket/internal/util"

	"go.uber.org/fx"
	"golang.org/x/term"
)

const title = "Supermarket Billing System"

// errQuit ends the menu loop: the shopper chose Exit or input ran out.
var errQuit = errors.New("quit")

// ConsoleParams holds dependencies for the console, injected by Fx.
type ConsoleParams struct {
	fx.In

	Logger     *slog.Logger
	AccountUC  usecase.AccountUsecase
	CatalogUC  usecase.CatalogUsecase
	ShoppingUC usecase.ShoppingUsecase
	Shutdowner fx.Shutdowner
}

type console struct {
	in         *bufio.Scanner
	out        io.Writer
	readSecret func() (string, error)

	logger     *slog.Logger
	accountUC  usecase.AccountUsecase
	catalogUC  usecase.CatalogUsecase
	shoppingUC usecase.ShoppingUsecase
	shutdowner fx.Shutdowner
}

// NewConsole builds the menu over standard input and output. Passwords are
// read without echo when standard input is a terminal.
func NewConsole(params ConsoleParams) delivery.Delivery {
	c := newConsole(os.Stdin, os.Stdout, params)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		c.readSecret = func() (string, error) {
			secret, err := term.ReadPassword(fd)
			c.println()
			if err != nil {
				return "", errors.WithStack(err)
			}

			return string(secret), nil
		}
	}

	return c
}

func newConsole(in io.Reader, out io.Writer, params ConsoleParams) *console {
	c := &console{
		in:         bufio.NewScanner(in),
		out:        out,
		logger:     params.Logger.With(slog.String("delivery", "console")),
		accountUC:  params.AccountUC,
		catalogUC:  params.CatalogUC,
		shoppingUC: params.ShoppingUC,
		shutdowner: params.Shutdowner,
	}
	c.readSecret = c.readLine

	return c
}

// Serve runs one shopper session until Exit or end of input, then asks the
// application to shut down.
func (c *console) Serve(ctx context.Context) error {
	session := entity.NewSession()
	sessionLogger := c.logger.With(slog.String("session_id", session.ID.String()))
	ctx = deliverycontext.WithSessionID(ctx, session.ID.String())
	ctx = deliverycontext.WithLogger(ctx, sessionLogger)

	sessionLogger.Info("Session started")

	err := c.mainMenu(ctx, session)
	if errors.Is(err, errQuit) {
		err = nil
	}

	if releaseErr := c.shoppingUC.ReleaseSession(ctx, session); releaseErr != nil {
		sessionLogger.Error("Failed to release session stock", slog.Any("error", releaseErr))
	}

	sessionLogger.Info("Session ended", slog.String("duration", util.FormatDuration(time.Since(session.StartedAt))))

	if c.shutdowner != nil {
		if shutdownErr := c.shutdowner.Shutdown(); shutdownErr != nil {
			sessionLogger.Error("Failed to request shutdown", slog.Any("error", shutdownErr))
		}
	}

	return err
}

func (c *console) mainMenu(ctx context.Context, session *entity.Session) error {
	for {
		c.println()
		c.printf("--- %s ---\n", title)
		c.println("1. Login")
		c.println("2. Register")
		c.println("3. Continue as Guest")
		c.println("4. Exit")

		choice, err := c.readInt("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = c.login(ctx, session)
		case 2:
			err = c.register(ctx, session)
		case 3:
			err = c.shopMenu(ctx, session)
		case 4:
			c.printf("Thank you for using the %s.\n", title)

			return errQuit
		default:
			c.println("Invalid choice. Please enter a valid option.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *console) login(ctx context.Context, session *entity.Session) error {
	email, err := c.prompt("Enter your email: ")
	if err != nil {
		return err
	}
	password, err := c.promptSecret("Enter your password: ")
	if err != nil {
		return err
	}

	account, err := c.accountUC.Login(ctx, session, &usecase.LoginInput{Email: email, Password: password})
	if err != nil {
		c.printError(ctx, err)

		return nil
	}

	c.printf("Login successful. Welcome, %s!\n", account.Name)

	return c.shopMenu(ctx, session)
}

func (c *console) register(ctx context.Context, session *entity.Session) error {
	name, err := c.prompt("Enter your name: ")
	if err != nil {
		return err
	}
	email, err := c.prompt("Enter your email: ")
	if err != nil {
		return err
	}
	password, err := c.promptSecret("Enter your password: ")
	if err != nil {
		return err
	}

	account, err := c.accountUC.Register(ctx, session, &usecase.RegisterInput{Name: name, Email: email, Password: password})
	if err != nil {
		c.printError(ctx, err)

		return nil
	}

	c.printf("Registration successful. Welcome, %s!\n", account.Name)

	return c.shopMenu(ctx, session)
}
