package chart

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// propNoInput marks a timing group whose notes are not judged.
const propNoInput = "noinput"

// parser holds the state of a single Parse call.
type parser struct {
	chart      *Chart
	line       int
	inHeader   bool
	inGroup    bool
	group      int
	groupCount int
	noInput    bool
	skipped    int
}

// ParseFile opens path and parses it as an .aff chart.
func ParseFile(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chart: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse reads a chart in the .aff text format.
//
// The optional header is a block of "key:value" lines terminated by a line
// holding a single "-". The body holds one event per line:
//
//	(1000,1);
//	hold(1000,1500,2);
//	arc(1000,2000,0.00,1.00,s,1.00,1.00,0,none,true)[arctap(1500)];
//	timing(0,120.00,4.00);
//	timinggroup(noinput){
//	  (3000,4);
//	};
//
// timing, scenecontrol and camera events carry nothing a renderer needs and
// are validated only for shape. Unknown event names are skipped.
func Parse(r io.Reader) (*Chart, error) {
	p := &parser{chart: New(), inHeader: true}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(strings.TrimSpace(scanner.Text())); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Parse",
				"line":     p.line,
				"error":    err.Error(),
			}).Error("Chart parse failed")
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read chart: %w", err)
	}
	if p.inGroup {
		return nil, p.errorf("timinggroup opened but never closed")
	}

	p.chart.Sort()

	logrus.WithFields(logrus.Fields{
		"function":      "Parse",
		"lines":         p.line,
		"taps":          len(p.chart.taps),
		"holds":         len(p.chart.holds),
		"arcs":          len(p.chart.arcs),
		"arctaps":       len(p.chart.arcTaps),
		"timing_groups": p.groupCount,
		"skipped":       p.skipped,
	}).Info("Parsed chart")

	return p.chart, nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, p.line, fmt.Sprintf(format, args...))
}

func (p *parser) parseLine(line string) error {
	if line == "" {
		return nil
	}

	if p.inHeader {
		if line == "-" {
			p.inHeader = false
			return nil
		}
		if key, value, ok := strings.Cut(line, ":"); ok && !strings.Contains(line, "(") {
			return p.parseHeader(strings.TrimSpace(key), strings.TrimSpace(value))
		}
		// no header block
		p.inHeader = false
	}

	switch {
	case line == "};":
		if !p.inGroup {
			return p.errorf("unexpected end of timinggroup")
		}
		p.inGroup = false
		p.group = 0
		p.noInput = false
		return nil
	case strings.HasPrefix(line, "timinggroup(") && strings.HasSuffix(line, "{"):
		return p.openGroup(line)
	}

	if !strings.HasSuffix(line, ";") {
		return p.errorf("missing ';' in %q", line)
	}
	return p.parseEvent(strings.TrimSuffix(line, ";"))
}

func (p *parser) parseHeader(key, value string) error {
	p.chart.Header[key] = value
	if key == "AudioOffset" {
		offset, err := strconv.Atoi(value)
		if err != nil {
			return p.errorf("AudioOffset %q is not an integer", value)
		}
		p.chart.AudioOffset = offset
	}
	return nil
}

func (p *parser) openGroup(line string) error {
	if p.inGroup {
		return p.errorf("nested timinggroup")
	}
	body := strings.TrimSuffix(strings.TrimPrefix(line, "timinggroup("), "{")
	props, ok := strings.CutSuffix(strings.TrimSpace(body), ")")
	if !ok {
		return p.errorf("malformed timinggroup %q", line)
	}

	p.inGroup = true
	p.groupCount++
	p.group = p.groupCount
	p.noInput = false
	for _, prop := range strings.Split(props, "_") {
		if strings.EqualFold(strings.TrimSpace(prop), propNoInput) {
			p.noInput = true
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "Parse",
		"line":     p.line,
		"group":    p.group,
		"props":    props,
		"no_input": p.noInput,
	}).Debug("Opened timing group")

	return nil
}

// splitCall splits `name(args)rest` into its parts.
func (p *parser) splitCall(s string) (name string, args []string, rest string, err error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return "", nil, "", p.errorf("expected '(' in %q", s)
	}
	closeIdx := strings.IndexByte(s[open:], ')')
	if closeIdx < 0 {
		return "", nil, "", p.errorf("expected ')' in %q", s)
	}
	closeIdx += open

	name = strings.TrimSpace(s[:open])
	inner := s[open+1 : closeIdx]
	for _, a := range strings.Split(inner, ",") {
		args = append(args, strings.TrimSpace(a))
	}
	return name, args, strings.TrimSpace(s[closeIdx+1:]), nil
}

func (p *parser) parseEvent(s string) error {
	name, args, rest, err := p.splitCall(s)
	if err != nil {
		return err
	}
	if name != "arc" && rest != "" {
		return p.errorf("unexpected %q after %s", rest, name)
	}

	switch name {
	case "":
		return p.parseTap(args)
	case "hold":
		return p.parseHold(args)
	case "arc":
		return p.parseArc(args, rest)
	case "timing":
		return p.expectArgs(name, args, 3)
	case "scenecontrol", "camera":
		p.skipped++
		return nil
	default:
		logrus.WithFields(logrus.Fields{
			"function": "Parse",
			"line":     p.line,
			"event":    name,
		}).Warn("Skipping unknown chart event")
		p.skipped++
		return nil
	}
}

func (p *parser) expectArgs(name string, args []string, n int) error {
	if len(args) < n {
		return p.errorf("%s needs %d arguments, got %d", name, n, len(args))
	}
	return nil
}

func (p *parser) atoi(field, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.errorf("%s %q is not an integer", field, s)
	}
	return v, nil
}

func (p *parser) parseTap(args []string) error {
	if len(args) != 2 {
		return p.errorf("tap needs 2 arguments, got %d", len(args))
	}
	timing, err := p.atoi("timing", args[0])
	if err != nil {
		return err
	}
	lane, err := p.atoi("lane", args[1])
	if err != nil {
		return err
	}
	p.chart.AddTap(Tap{Timing: timing, Lane: lane, Group: p.group, NoInput: p.noInput})
	return nil
}

func (p *parser) parseHold(args []string) error {
	if len(args) != 3 {
		return p.errorf("hold needs 3 arguments, got %d", len(args))
	}
	timing, err := p.atoi("timing", args[0])
	if err != nil {
		return err
	}
	end, err := p.atoi("end timing", args[1])
	if err != nil {
		return err
	}
	lane, err := p.atoi("lane", args[2])
	if err != nil {
		return err
	}
	if end < timing {
		return fmt.Errorf("%w: line %d: hold ends at %d before it starts at %d", ErrInvalidNote, p.line, end, timing)
	}
	p.chart.AddHold(Hold{Timing: timing, EndTiming: end, Lane: lane, Group: p.group, NoInput: p.noInput})
	return nil
}

// parseArc handles arc(t,end,x1,x2,easing,y1,y2,color,sfx,trace[,...]) with an
// optional [arctap(t),...] list.
func (p *parser) parseArc(args []string, rest string) error {
	if err := p.expectArgs("arc", args, 10); err != nil {
		return err
	}
	timing, err := p.atoi("timing", args[0])
	if err != nil {
		return err
	}
	end, err := p.atoi("end timing", args[1])
	if err != nil {
		return err
	}
	for _, i := range []int{2, 3, 5, 6} {
		if _, err := strconv.ParseFloat(args[i], 64); err != nil {
			return p.errorf("arc coordinate %q is not a number", args[i])
		}
	}
	if _, err := p.atoi("color", args[7]); err != nil {
		return err
	}
	if end < timing {
		return fmt.Errorf("%w: line %d: arc ends at %d before it starts at %d", ErrInvalidNote, p.line, end, timing)
	}

	var trace bool
	switch args[9] {
	case "true", "designant":
		trace = true
	case "false":
	default:
		return p.errorf("arc trace flag %q is not a boolean", args[9])
	}

	arc := Arc{
		Timing:    timing,
		EndTiming: end,
		IsTrace:   trace,
		Sfx:       args[8],
		Group:     p.group,
		NoInput:   p.noInput,
	}
	p.chart.AddArc(arc)

	if rest == "" {
		return nil
	}
	if !strings.HasPrefix(rest, "[") || !strings.HasSuffix(rest, "]") {
		return p.errorf("malformed arctap list %q", rest)
	}
	list := strings.TrimSpace(rest[1 : len(rest)-1])
	for list != "" {
		name, tapArgs, tail, err := p.splitCall(list)
		if err != nil {
			return err
		}
		if name != "arctap" || len(tapArgs) < 1 {
			return p.errorf("expected arctap(timing), got %q", list)
		}
		t, err := p.atoi("arctap timing", tapArgs[0])
		if err != nil {
			return err
		}
		p.chart.AddArcTap(ArcTap{Timing: t, Sfx: arc.Sfx, Group: p.group, NoInput: p.noInput})

		list = strings.TrimSpace(strings.TrimPrefix(tail, ","))
	}
	return nil
}
