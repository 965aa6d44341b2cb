package commands

import (
	"fmt"
	"strings"
	"time"
)

// spinner is a minimal terminal spinner for commands that run outside
// the full TUI (login, register, verify).
type spinner struct {
	message string
	stop    chan struct{}
	done    chan struct{}
}

func newSpinner(message string) *spinner {
	s := &spinner{
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.done)
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	fmt.Print("\033[?25l") // hide cursor
	i := 0
	for {
		select {
		case <-s.stop:
			// clear the line and restore the cursor
			fmt.Print("\r" + strings.Repeat(" ", len(s.message)+4) + "\r")
			fmt.Print("\033[?25h")
			return
		case <-ticker.C:
			fmt.Printf("\r%s %s", frames[i%len(frames)], s.message)
			i++
		}
	}
}

// Stop halts the spinner and clears its line.
func (s *spinner) Stop() {
	close(s.stop)
	<-s.done
}
