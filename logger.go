/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */


package main

import (
	"fmt"
	"strings"
)

// maxLogLines is how much history the log pane keeps.
const maxLogLines = 500

// Logger is an output log that can be viewed and scrolled.
type Logger struct {
	// buf contains each line of logged text.
	buf []string

	// pos is one past the last line shown, the log follows new output
	// while pos is at the end.
	pos int
}

// NewLog creates a new Logger.
func NewLog() *Logger {
	return &Logger{
		buf: make([]string, 0, 100),
	}
}

// Log outputs a new line to the log.
func (log *Logger) Log(s ...string) {
	scroll := log.pos == len(log.buf)

	// add the new line
	log.buf = append(log.buf, strings.Join(s, " "))

	// drop the oldest history
	if len(log.buf) > maxLogLines {
		drop := len(log.buf) - maxLogLines
		log.buf = append(log.buf[:0], log.buf[drop:]...)

		if log.pos -= drop; log.pos < 0 {
			log.pos = 0
		}
	}

	if scroll {
		log.pos = len(log.buf)
	}
}

// Logf outputs a formatted line to the log.
func (log *Logger) Logf(format string, args ...any) {
	log.Log(fmt.Sprintf(format, args...))
}

// Write logs each line of p, so the log can be used as an io.Writer.
func (log *Logger) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")

	for _, line := range strings.Split(text, "\n") {
		log.Log(line)
	}

	return len(p), nil
}

// Lines returns the number of lines logged.
func (log *Logger) Lines() int {
	return len(log.buf)
}

// Window returns the n lines ending at the read position.
func (log *Logger) Window(n int) []string {
	end := log.pos

	// always fill the window when there's enough text
	if end < n {
		end = min(n, len(log.buf))
	}

	return log.buf[max(end-n, 0):end]
}

// Home scrolls the log to the beginning.
func (log *Logger) Home() {
	log.pos = 0
}

// End scrolls the log to the end.
func (log *Logger) End() {
	log.pos = len(log.buf)
}

// ScrollUp scrolls a window of n lines back one line.
func (log *Logger) ScrollUp(n int) {
	if log.pos > n {
		log.pos--
	} else {
		log.Home()
	}
}

// ScrollDown scrolls a window of n lines forward one line.
func (log *Logger) ScrollDown(n int) {
	log.pos++

	// skip over the first window
	if log.pos <= n {
		log.pos = n + 1
	}

	// clamp to end
	if log.pos >= len(log.buf) {
		log.End()
	}
}
