package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/overlay"
)

type toast struct {
	Title string
}

const barWidth = 20

// terminalSurface draws the overlay as a single line redrawn in place.
type terminalSurface struct {
	w      io.Writer
	titles map[uuid.UUID]string
}

func newTerminalSurface(w io.Writer) *terminalSurface {
	return &terminalSurface{w: w, titles: make(map[uuid.UUID]string)}
}

func (s *terminalSurface) Mount(e overlay.Entry[toast]) {
	s.titles[e.ID] = e.Value.Title
	fmt.Fprintln(s.w)
}

func (s *terminalSurface) Progress(id uuid.UUID, p float64) {
	filled := int(p*barWidth + 0.5)
	fmt.Fprintf(s.w, "\r[%s%s] %s", strings.Repeat("#", filled), strings.Repeat(" ", barWidth-filled), s.titles[id])
}

func (s *terminalSurface) Unmount(id uuid.UUID, reason overlay.CloseReason) {
	fmt.Fprintf(s.w, "\r%s closed (%s)\n", s.titles[id], reason)
	delete(s.titles, id)
}
