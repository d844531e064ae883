// Package turtle interprets L-system strings as turtle graphics, producing
// polyline strokes in 3D.
package turtle

import "strconv"

// Stroke is one connected polyline
type Stroke []Vec3

// Drawing is the output of one interpretation run
type Drawing struct {
	Strokes      []Stroke
	BranchPoints []Vec3 // Position at every '[' push
	Segments     int    // Number of F segments drawn
}

// Points returns the total number of stroke points
func (d *Drawing) Points() int {
	n := 0
	for _, s := range d.Strokes {
		n += len(s)
	}
	return n
}

// Interpreter walks symbol strings with a pose stack
type Interpreter struct {
	Step   float64
	Angle  float64 // Degrees
	ThreeD bool    // Enables pitch and roll
}

// Run interprets seq starting from the given pose. Unknown symbols are ignored
// and unbalanced brackets are tolerated.
func (in Interpreter) Run(seq string, start Pose) *Drawing {
	d := &Drawing{}
	pose := start
	var stack []Pose

	var current Stroke
	penDown := false

	flush := func() {
		if len(current) >= 2 {
			d.Strokes = append(d.Strokes, current)
		}
		current = nil
		penDown = false
	}

	turn := func(r Mat3) {
		pose.Orientation = pose.Orientation.Mul(r)
	}

	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'F':
			k := readMultiplier(seq, &i)
			if !penDown {
				current = Stroke{pose.Position}
				penDown = true
			}
			pose.Position = pose.Position.Add(pose.Orientation.Forward.Scale(in.Step * k))
			current = append(current, pose.Position)
			d.Segments++
		case 'f':
			k := readMultiplier(seq, &i)
			flush()
			pose.Position = pose.Position.Add(pose.Orientation.Forward.Scale(in.Step * k))
		case '+':
			turn(yaw(in.Angle * readMultiplier(seq, &i)))
		case '-':
			turn(yaw(-in.Angle * readMultiplier(seq, &i)))
		case '&', '^', '\\', '/':
			// The multiplier is consumed even when 3D is off so it never leaks as symbols
			c := seq[i]
			k := readMultiplier(seq, &i)
			if !in.ThreeD {
				continue
			}
			switch c {
			case '&':
				turn(pitch(in.Angle * k))
			case '^':
				turn(pitch(-in.Angle * k))
			case '\\':
				turn(roll(in.Angle * k))
			case '/':
				turn(roll(-in.Angle * k))
			}
		case '|':
			turn(yaw(180))
		case '[':
			stack = append(stack, pose)
			d.BranchPoints = append(d.BranchPoints, pose.Position)
		case ']':
			if len(stack) == 0 {
				continue
			}
			pose = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			flush()
		}
	}
	flush()

	return d
}

// readMultiplier parses an optional number right after seq[*i]: an optional
// sign, digits and at most one '.', with at least one digit. On success *i is
// moved to the last consumed byte. Returns 1 if no number is present.
func readMultiplier(seq string, i *int) float64 {
	j := *i + 1
	start := j
	if j < len(seq) && (seq[j] == '+' || seq[j] == '-') {
		j++
	}
	digits, dot := 0, false
	for ; j < len(seq); j++ {
		c := seq[j]
		if c >= '0' && c <= '9' {
			digits++
			continue
		}
		if c == '.' && !dot {
			dot = true
			continue
		}
		break
	}
	if digits == 0 {
		return 1
	}

	v, err := strconv.ParseFloat(seq[start:j], 64)
	if err != nil {
		return 1
	}
	*i = j - 1
	return v
}
