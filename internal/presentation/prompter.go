package presentation

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"ftool/internal/i18n"
)

// ConsolePrompter asks the interactive questions on a terminal. Reads block
// until the user answers; there is no timeout, so a destructive decision is
// never defaulted silently.
type ConsolePrompter struct {
	in       *bufio.Reader
	out      io.Writer
	messages *i18n.Messages
}

func NewConsolePrompter(in io.Reader, out io.Writer, messages *i18n.Messages) *ConsolePrompter {
	return &ConsolePrompter{
		in:       bufio.NewReader(in),
		out:      out,
		messages: messages,
	}
}

func (c *ConsolePrompter) AskOverwrite(path string) (string, error) {
	fmt.Fprintln(c.out, warnText(c.messages.T("file_exists", path)))
	fmt.Fprint(c.out, c.messages.T("overwrite_prompt"))
	line, err := c.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *ConsolePrompter) ConfirmMkdir(path string) (bool, error) {
	for {
		fmt.Fprint(c.out, c.messages.T("dir_not_exist", path))
		line, err := c.in.ReadString('\n')
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "", "y", "yes":
			fmt.Fprintln(c.out, infoText(c.messages.T("creating_dirs", path)))
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}
