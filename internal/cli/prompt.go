package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordReader reads a password without echoing it.
type PasswordReader func() ([]byte, error)

// terminalPasswordReader reads from the stdin terminal with echo disabled.
func terminalPasswordReader() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd())) //nolint:gosec // Fd fits in int on supported platforms.
}

// PromptCredentials asks for whatever of username and password is missing.
// The username is read as a line from reader; the password comes from
// readPassword so that it is never echoed.
func PromptCredentials(
	writer io.Writer,
	reader io.Reader,
	username string,
	readPassword PasswordReader,
) (string, string, error) {
	if username == "" {
		fmt.Fprint(writer, "Username: ")
		scanner := bufio.NewScanner(reader)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", "", fmt.Errorf("reading username: %w", err)
			}
			return "", "", errors.New("no username entered")
		}
		username = strings.TrimSpace(scanner.Text())
	}

	fmt.Fprint(writer, "Password: ")
	password, err := readPassword()
	fmt.Fprintln(writer)
	if err != nil {
		return "", "", fmt.Errorf("reading password: %w", err)
	}
	return username, string(password), nil
}

// ReadPasswordLine reads the first line of reader, for --password-stdin.
func ReadPasswordLine(reader io.Reader) (string, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password from stdin: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("empty password on stdin")
	}
	return line, nil
}
