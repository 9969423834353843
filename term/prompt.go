// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package term

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Prompter shows alerts and confirmations on a line-oriented terminal
type Prompter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Alert prints msg and waits for Enter
func (p *Prompter) Alert(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s\n[press Enter] ", msg)
	p.readLine()
}

// Confirm prints msg and accepts y or yes. Anything else, including end of
// input, declines.
func (p *Prompter) Confirm(msg string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s [y/N] ", msg)
	answer := strings.ToLower(strings.TrimSpace(p.readLine()))
	return answer == "y" || answer == "yes"
}

func (p *Prompter) readLine() string {
	line, _ := p.in.ReadString('\n')
	return line
}
