package textgame

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// response is everything the engine printed for one command.
type response struct {
	lines    []string
	finished bool // the engine printed its final line and exited
	illegal  *pos // set when the engine rejected a move
}

// session frames the text protocol: one command line in, lines out until
// the next prompt.
type session struct {
	w   io.Writer
	r   *bufio.Reader
	log logrus.FieldLogger
}

func newSession(w io.Writer, r io.Reader, log logrus.FieldLogger) *session {
	return &session{w: w, r: bufio.NewReader(r), log: log}
}

// send writes one command and reads its response.
func (s *session) send(cmd string) (*response, error) {
	s.log.WithField("cmd", cmd).Debug("engine <-")
	if _, err := fmt.Fprintf(s.w, "%s\n", cmd); err != nil {
		return nil, fmt.Errorf("failed to send command: %w", err)
	}
	return s.read()
}

// read collects lines up to the next prompt. Reaching EOF is only expected
// right after the win line.
func (s *session) read() (*response, error) {
	resp := &response{}
	won := false
	for {
		line, err := s.r.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			s.log.WithField("line", line).Debug("engine ->")
			if line == promptLine {
				return resp, nil
			}
			resp.lines = append(resp.lines, line)
			if strings.HasPrefix(line, winLine) {
				won = true
			}
			if m := illegalLine.FindStringSubmatch(line); m != nil {
				r, _ := strconv.Atoi(m[1])
				c, _ := strconv.Atoi(m[2])
				resp.illegal = &pos{r, c}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) && won {
				resp.finished = true
				return resp, nil
			}
			if errors.Is(err, io.EOF) {
				return nil, ErrEngineExited
			}
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
	}
}
