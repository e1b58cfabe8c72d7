package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/valter-silva-au/primo/internal/core"
)

// runREPL greets the user, prints the loaded tasks and then executes one
// command per input line until bye or end of input.
func runREPL(session *core.Session, in io.Reader, out io.Writer) error {
	name := assistantName()

	fmt.Fprintln(out, paint(speakerStyle, name+":"))
	fmt.Fprintf(out, "Hello! I'm %s!!\nWhat can I do for you?\n", name)
	if LoadErr != nil {
		fmt.Fprintln(out, paint(warningStyle, "Warning: "+LoadErr.Error()))
	}
	fmt.Fprintln(out, "Current Tasks:")
	for i, t := range session.Tasks() {
		fmt.Fprintf(out, "%d.%s\n", i+1, renderTask(t.String(), t.Done))
	}

	scanner := bufio.NewScanner(in)
	for session.Running() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, paint(userStyle, "Me:"))
		if !scanner.Scan() {
			break
		}
		res, err := session.Handle(scanner.Text())
		fmt.Fprintln(out)
		fmt.Fprintln(out, paint(speakerStyle, name+":"))
		writeReply(out, res, err)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// writeReply prints a command's reply, or its error when the command was
// rejected. A result accompanied by an error means the change was applied but
// could not be saved.
func writeReply(out io.Writer, res *core.Result, err error) {
	if res != nil {
		fmt.Fprintln(out, res.Text())
	}
	if err == nil {
		return
	}
	if core.IsCommandError(err) {
		fmt.Fprintln(out, paint(errorStyle, err.Error()))
		return
	}
	fmt.Fprintln(out, paint(warningStyle, "Warning: "+err.Error()))
}

// renderTask colours a rendered task line by its done flag.
func renderTask(line string, done bool) string {
	if done {
		return paint(doneStyle, line)
	}
	return paint(todoStyle, line)
}
