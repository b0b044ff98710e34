package flow

import (
	"fmt"
	"strings"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// CodeInput models the six single-digit cells of a verification code and
// the cell that has focus.
type CodeInput struct {
	cells [CodeLength]rune
	focus int
}

// Type puts a digit into the focused cell and moves focus forward. It
// reports true when the last cell has just received a value, which is the
// signal to submit. Non-digits are ignored.
func (c *CodeInput) Type(ch rune) bool {
	if ch < '0' || ch > '9' {
		return false
	}
	c.cells[c.focus] = ch
	if c.focus == CodeLength-1 {
		return true
	}
	c.focus++
	return false
}

// Backspace clears the focused cell, or moves focus back when the cell is
// already empty.
func (c *CodeInput) Backspace() {
	if c.cells[c.focus] != 0 {
		c.cells[c.focus] = 0
		return
	}
	if c.focus > 0 {
		c.focus--
	}
}

// Fill resets the input and types every digit of s, as a paste would. It
// reports whether the last cell was filled. More than CodeLength digits
// leave the input empty and yield ErrCodeTooLong.
func (c *CodeInput) Fill(s string) (bool, error) {
	c.Reset()
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits > CodeLength {
		return false, fmt.Errorf("%w: %d digits", ErrCodeTooLong, digits)
	}

	last := false
	for _, r := range s {
		if c.Type(r) {
			last = true
		}
	}
	return last, nil
}

func (c *CodeInput) Reset() {
	*c = CodeInput{}
}

func (c *CodeInput) Focus() int { return c.focus }

// Complete reports whether every cell holds a digit.
func (c *CodeInput) Complete() bool {
	for _, r := range c.cells {
		if r == 0 {
			return false
		}
	}
	return true
}

// Code returns the assembled code, or ErrIncompleteCode.
func (c *CodeInput) Code() (string, error) {
	if !c.Complete() {
		return "", ErrIncompleteCode
	}
	return string(c.cells[:]), nil
}

// String renders the cells with "_" for empty ones and brackets around the
// focused cell, e.g. "1 2 [_] _ _ _".
func (c *CodeInput) String() string {
	parts := make([]string, CodeLength)
	for i, r := range c.cells {
		s := "_"
		if r != 0 {
			s = string(r)
		}
		if i == c.focus {
			s = "[" + s + "]"
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}
