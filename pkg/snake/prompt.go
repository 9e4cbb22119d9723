// Package snake holds the promptui prompts shared by the interactive
// commands.
package snake

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user leaves a prompt with ctrl-c or
// ctrl-d.
var ErrAborted = errors.New("snake: aborted")

// IO is where prompts read and write. The zero value uses the terminal.
type IO struct {
	In  io.Reader
	Out io.Writer
}

func (p IO) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	return io.NopCloser(p.In)
}

func (p IO) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	return NopCloser(p.Out)
}

var textTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// NotEmpty is a promptui validator rejecting blank input.
func NotEmpty(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("empty")
	}
	return nil
}

// Text asks for a line of text. An empty answer keeps def.
func (p IO) Text(label, def string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: def != "",
		Templates: textTemplates,
		Validate:  validate,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	result, err := prompt.Run()
	if err != nil {
		return "", aborted(err)
	}
	if result == "" {
		result = def
	}
	return strings.TrimSpace(result), nil
}

// Secret is Text with masked input. An empty answer keeps def.
func (p IO) Secret(label, def string) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Mask:      '*',
		Templates: textTemplates,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	result, err := prompt.Run()
	if err != nil {
		return "", aborted(err)
	}
	if result == "" {
		return def, nil
	}
	return result, nil
}

// Confirm asks a yes/no question.
func (p IO) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	answer, err := p.Text(label+" ["+hint+"]", "", func(input string) error {
		if input == "" {
			return nil
		}
		_, err := ParseBool(input)
		return err
	})
	if err != nil {
		return false, err
	}
	if answer == "" {
		return def, nil
	}
	return ParseBool(answer)
}

// Choice is one entry of a Select.
type Choice struct {
	Name    string
	Details string
}

var selectTemplates = &promptui.SelectTemplates{
	Label:    "{{ . }}?",
	Active:   "➜  {{ .Name | bold }} {{ .Details | green }}",
	Inactive: "   {{ .Name }} {{ .Details | cyan }}",
	Selected: "{{ .Name | bold }}",
}

// Select asks the user to pick one of choices and returns its index.
func (p IO) Select(label string, choices []Choice, cursor int) (int, error) {
	searcher := func(input string, index int) bool {
		name := strings.Replace(strings.ToLower(choices[index].Name+choices[index].Details), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(name, input)
	}
	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     choices,
		Templates: selectTemplates,
		Size:      10,
		CursorPos: cursor,
		Searcher:  searcher,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	i, _, err := prompt.Run()
	if err != nil {
		return -1, aborted(err)
	}
	return i, nil
}

func aborted(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrAborted
	}
	return err
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser with a no-op Close method wrapping w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}
