package engine

// runProgram is the sequencing and alternation driver. It walks a
// compiled program against the input and produces the last non-invisible
// synthesized value along a successful path, or Failure when every
// alternative of some segment fails.
//
// Rollback: each alternative records the accumulation marks before it
// starts; when it fails, buffer growth since the mark is discarded and
// the cursor resets to where the alternative began. Nested blocks run
// through their own runProgram call, so inner rollback never escapes
// outward.
//
// An alternative with zero steps is a valid, trivially successful match.
func runProgram(st *State, prog *program, in Input) (Result, int, error) {
	pos := in.At
	last := Invisible()
	for si := range prog.segs {
		seg := &prog.segs[si]
		matched := false
		for ai := range seg.alts {
			m := st.mark()
			altPos := pos
			altLast := last
			ok := true
			for _, step := range seg.alts[ai].steps {
				res, rem, err := step.Run(st, Input{S: in.S, At: altPos})
				if err != nil {
					return Failure(), in.At, err
				}
				if res.Failed() {
					ok = false
					break
				}
				if !res.IsInvisible() {
					altLast = res
				}
				altPos = rem
			}
			if ok {
				pos = altPos
				last = altLast
				matched = true
				break
			}
			st.rollback(m)
		}
		if !matched {
			return Failure(), in.At, nil
		}
	}
	return last, pos, nil
}
