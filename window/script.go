package window

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// scriptStep is one action of a capture script.
type scriptStep struct {
	Action string `yaml:"action"`
	Label  string `yaml:"label,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

// Script replays start, wait, screenshot and quit actions one Update at a
// time, for capturing the card without a person at the keyboard:
//
//	steps:
//	  - action: start
//	  - action: wait
//	    frames: 240
//	  - action: screenshot
//	    label: tree
//	  - action: quit
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
}

// ParseScript parses a YAML capture script.
func ParseScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "start", "wait", "screenshot", "quit":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// LoadScript reads and parses the script at path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// Done reports whether every step has run.
func (s *Script) Done() bool {
	return s.cursor >= len(s.steps) && s.waitCount == 0
}

// step runs at most one action. It reports true when that action is quit.
func (s *Script) step(g *Game) bool {
	if s.waitCount > 0 {
		s.waitCount--
		return false
	}
	if s.cursor >= len(s.steps) {
		return false
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "start":
		g.session.Start(g.now())
	case "screenshot":
		label := st.Label
		if label == "" {
			label = g.session.Phase().String()
		}
		g.shots.request(label)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1
		}
	case "quit":
		return true
	}
	return false
}
