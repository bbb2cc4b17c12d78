package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ui holds the output color scheme.
type ui struct {
	label   *color.Color
	value   *color.Color
	secret  *color.Color
	heading *color.Color
	warn    *color.Color
	ok      *color.Color
	err     *color.Color
}

func newUI() *ui {
	return &ui{
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgHiWhite),
		secret:  color.New(color.FgRed, color.Bold),
		heading: color.New(color.FgBlue, color.Bold),
		warn:    color.New(color.FgYellow),
		ok:      color.New(color.FgGreen, color.Bold),
		err:     color.New(color.FgRed),
	}
}

// field prints an aligned "label: value" line.
func (u *ui) field(w io.Writer, label, value string) {
	u.label.Fprintf(w, "%-14s", label+":")
	u.value.Fprintln(w, value)
}

// secretField prints a field holding private material.
func (u *ui) secretField(w io.Writer, label, value string) {
	u.label.Fprintf(w, "%-14s", label+":")
	u.secret.Fprintln(w, value)
}

func (u *ui) header(w io.Writer, format string, args ...any) {
	u.heading.Fprintf(w, format+"\n", args...)
}

func (u *ui) warning(w io.Writer, format string, args ...any) {
	u.warn.Fprintf(w, "Warning: "+format+"\n", args...)
}

func (u *ui) success(w io.Writer, format string, args ...any) {
	u.ok.Fprintf(w, format+"\n", args...)
}

func (u *ui) fatal(w io.Writer, err error) {
	u.err.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}
