// Package console is the plain text front end for a combat: a renderer for
// status and turn order, and a prompter that lets a person pick options.
package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/KirkDiggler/mine/internal/domain/combat"
)

// Renderer writes combat state as plain text
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// RenderStatus writes one aligned line per unit
func (r *Renderer) RenderStatus(status []combat.UnitStatus) {
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	for _, s := range status {
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\n", s.Name, s.Team, s.Hitpoints, s.MaxHitpoints, s.State)
	}
	_ = tw.Flush()
}

// RenderOrder writes the upcoming turn order on one line
func (r *Renderer) RenderOrder(names []string) {
	fmt.Fprintf(r.out, "Next: %s\n\n", strings.Join(names, " > "))
}
