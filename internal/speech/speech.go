// Package speech voices text through an external speech-synthesis
// process (festival by default).
package speech

import (
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// Engine spawns one synthesis process per utterance. Utterances are
// fire-and-forget: nothing queues behind a running one, and Stop kills
// whatever is still speaking.
type Engine struct {
	binary string
	logger *zap.Logger

	mu    sync.Mutex
	procs []*exec.Cmd
}

// New creates an engine driving the given synthesis binary.
func New(binary string, logger *zap.Logger) *Engine {
	return &Engine{binary: binary, logger: logger}
}

// Available reports whether the synthesis binary can be found. Callers
// check this at startup and report the failure instead of crashing.
func (e *Engine) Available() bool {
	_, err := exec.LookPath(e.binary)
	return err == nil
}

// Speak voices the given text. The say-command is written to the
// process's stdin, stdin is closed, and the process is left to run; the
// caller never blocks on it.
func (e *Engine) Speak(text string) {
	cmd := exec.Command(e.binary)
	// Own process group, so Stop can signal the whole group.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		e.logger.Error("failed to open speech stdin", zap.Error(err))
		return
	}

	if err := cmd.Start(); err != nil {
		e.logger.Error("failed to start speech process",
			zap.String("binary", e.binary),
			zap.Error(err),
		)
		return
	}

	go func() {
		io.WriteString(stdin, fmt.Sprintf("(SayText %q)", text))
		stdin.Close()
		cmd.Wait()
	}()

	e.mu.Lock()
	e.procs = append(e.procs, cmd)
	e.mu.Unlock()
}

// Stop kills every synthesis process still running, by process group.
func (e *Engine) Stop() {
	e.mu.Lock()
	procs := e.procs
	e.procs = nil
	e.mu.Unlock()

	for _, cmd := range procs {
		if cmd.Process == nil {
			continue
		}
		pgid, err := syscall.Getpgid(cmd.Process.Pid)
		if err != nil {
			// Already gone.
			continue
		}
		if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
			e.logger.Warn("failed to stop speech process", zap.Int("pid", cmd.Process.Pid), zap.Error(err))
		}
	}
}
