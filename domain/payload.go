package domain

// Step is one stage of a business process.
type Step struct {
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Option is one alternative way of running the process, typically produced
// by the AI analysis alongside the as-is steps.
type Option struct {
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	Steps   []Step `json:"steps,omitempty"`
}

// Payload carries the process data itself: the described steps, the
// alternative options, and the comparison between them. The store persists
// it as an opaque block and never reaches into it.
type Payload struct {
	Description string   `json:"description,omitempty"`
	Steps       []Step   `json:"steps,omitempty"`
	Options     []Option `json:"options,omitempty"`
	Comparison  string   `json:"comparison,omitempty"`
}

// Clone returns a structurally independent copy. Snapshots hold clones, so
// later edits to the live payload can never leak into history.
func (p *Payload) Clone() *Payload {
	if p == nil {
		return nil
	}
	out := &Payload{
		Description: p.Description,
		Comparison:  p.Comparison,
	}
	if p.Steps != nil {
		out.Steps = append([]Step(nil), p.Steps...)
	}
	if p.Options != nil {
		out.Options = make([]Option, len(p.Options))
		for i, opt := range p.Options {
			cloned := opt
			if opt.Steps != nil {
				cloned.Steps = append([]Step(nil), opt.Steps...)
			}
			out.Options[i] = cloned
		}
	}
	return out
}
