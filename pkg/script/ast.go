package script

import "github.com/alecthomas/participle/v2/lexer"

// Script is a sequence of gesture steps.
//
// Example:
//
//	viewport 400 400
//	start
//	move (150,200) (250,200)
//	move (125,200) (275,200)
//	end
//	wait 300ms
//	expect scale 1.25
type Script struct {
	Steps []*Step `@@*`
}

// Step is one line of a script.
type Step struct {
	Pos lexer.Position

	Viewport *ViewportStep `  @@`
	Start    *StartStep    `| @@`
	Tap      *TapStep      `| @@`
	Move     *MoveStep     `| @@`
	Release  *ReleaseStep  `| @@`
	Wait     *WaitStep     `| @@`
	Zoom     *ZoomStep     `| @@`
	Expect   *ExpectStep   `| @@`
}

// ViewportStep reports the measured viewport size.
// Example: viewport 400 400
type ViewportStep struct {
	Width  float64 `"viewport" @Number`
	Height float64 `@Number`
}

// StartStep puts the first finger down.
type StartStep struct {
	Start bool `@"start"`
}

// TapStep is a start immediately followed by an end with no movement.
type TapStep struct {
	Tap bool `@"tap"`
}

// MoveStep reports the fingers currently down.
// Example: move (100,100) (200,100@50,60) delta 10,0
type MoveStep struct {
	Touches []*TouchSpec `"move" @@+`
	Delta   *PointSpec   `( "delta" @@ )?`
}

// TouchSpec is one finger: its page point and optionally its image-local
// point. Without a local point the runner derives it from the current
// transform.
type TouchSpec struct {
	Page  PointSpec  `"(" @@`
	Local *PointSpec `( "@" @@ )? ")"`
}

// PointSpec is an x,y pair.
type PointSpec struct {
	X float64 `@Number ","`
	Y float64 `@Number`
}

// ReleaseStep lifts the last finger, either normally or by cancellation.
// Example: end 50,0
type ReleaseStep struct {
	Kind  string     `@( "end" | "cancel" )`
	Delta *PointSpec `@@?`
}

// WaitStep advances the clock.
// Example: wait 300ms
type WaitStep struct {
	Millis float64 `"wait" @Number "ms"?`
}

// ZoomStep requests a programmatic zoom.
type ZoomStep struct {
	Target float64 `"zoom" @Number`
}

// ExpectStep asserts a field of the displayed transform.
// Example: expect tx 50
type ExpectStep struct {
	Field string  `"expect" @( "scale" | "tx" | "ty" )`
	Value float64 `@Number`
}
