package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх произвольных потоков ввода и вывода.
// Скрытый ввод используется, только если ввод является терминалом.
type Stdio struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // дескриптор терминала или -1
}

// NewStdio возвращает IO поверх os.Stdin и os.Stdout
func NewStdio() *Stdio {
	s := New(os.Stdin, os.Stdout)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		s.fd = int(os.Stdin.Fd())
	}
	return s
}

// New возвращает IO поверх in и out (используется в тестах)
func New(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{in: bufio.NewReader(in), out: out, fd: -1}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	if s.fd < 0 {
		return s.ReadInput(prompt)
	}

	s.Printf("%s", prompt)
	secret, err := term.ReadPassword(s.fd)
	s.Println("")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}
