package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	deliverycontext "supermarket/internal/delivery/context"
	domainerrors "supermarket/internal/domain/errors"
	"supermarket/internal/errors"
)

// readLine returns the next input line, or errQuit once input is exhausted.
func (c *console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", errors.Wrap(err, "read input")
		}

		return "", errQuit
	}

	return strings.TrimSpace(c.in.Text()), nil
}

func (c *console) prompt(label string) (string, error) {
	c.printf("%s", label)

	return c.readLine()
}

func (c *console) promptSecret(label string) (string, error) {
	c.printf("%s", label)

	return c.readSecret()
}

// readInt prompts until the shopper enters an integer.
func (c *console) readInt(label string) (int, error) {
	for {
		line, err := c.prompt(label)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		c.println("Invalid input. Please enter a valid integer.")
	}
}

func (c *console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *console) println(args ...any) {
	_, _ = fmt.Fprintln(c.out, args...)
}

// printError shows the shopper-facing message of an application error.
// Anything else is logged and reported generically.
func (c *console) printError(ctx context.Context, err error) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Details() != "" {
			c.println(appErr.Message(), appErr.Details())

			return
		}
		c.println(appErr.Message())

		return
	}

	deliverycontext.GetLoggerOrDefault(ctx, c.logger).Error("Unexpected error", slog.Any("error", err))
	c.println("Something went wrong. Please try again.")
}
