//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
	"unsafe"

	"github.com/creack/pty"
)

const (
	scrollback  = 1 << 20 // bytes of output kept per app
	pollEvery   = 25 * time.Millisecond
	readyWithin = 5 * time.Second
	seeWithin   = 3 * time.Second
)

var binPath = "typeahead_e2e" // set by TestMain

// Raw bytes a terminal sends for the keys the widget binds
const (
	KeyEnter  = "\r"
	KeyCtrlC  = "\x03"
	KeyCtrlU  = "\x15"
	KeyCtrlO  = "\x0f"
	KeyCtrlG  = "\x07"
	KeyEscape = "\x1b"
	KeyDown   = "\x1b[B"
)

// ansiRe strips CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// TUITestFramework runs one typeahead process on a pty and records its output
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string

	mu   sync.Mutex
	ring []byte
	pos  int
	full bool
}

func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t, ring: make([]byte, scrollback)}
}

// CreateTestWorkspace creates the directory the app runs in. HOME, the
// config dir, the catalog and the log all live there.
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tf.workspace = tf.t.TempDir()
	return tf.workspace, nil
}

// StartApp launches typeahead with args on a 120x40 pty
func (tf *TUITestFramework) StartApp(args ...string) error {
	if tf.workspace == "" {
		if _, err := tf.CreateTestWorkspace(); err != nil {
			return err
		}
	}

	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Dir = tf.workspace
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+filepath.Join(tf.workspace, ".config"),
		"TYPEAHEAD_CATALOG_PATH="+filepath.Join(tf.workspace, "catalog.db"),
		"TYPEAHEAD_LOG_FILE="+filepath.Join(tf.workspace, "typeahead.log"),
	)

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("open pty: %w", err)
	}
	tf.pty, tf.tty = ptyFile, tty
	tf.cmd.Stdin, tf.cmd.Stdout, tf.cmd.Stderr = tty, tty, tty

	size := struct{ Row, Col, X, Y uint16 }{40, 120, 0, 0}
	syscall.Syscall(syscall.SYS_IOCTL, ptyFile.Fd(), uintptr(syscall.TIOCSWINSZ), uintptr(unsafe.Pointer(&size)))

	if err := tf.cmd.Start(); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("start typeahead: %w", err)
	}

	go tf.record()
	return nil
}

// record copies pty output into the ring until the pty closes
func (tf *TUITestFramework) record() {
	chunk := make([]byte, 8192)
	for {
		n, err := tf.pty.Read(chunk)
		if n > 0 {
			tf.mu.Lock()
			for _, c := range chunk[:n] {
				tf.ring[tf.pos] = c
				tf.pos = (tf.pos + 1) % scrollback
				if tf.pos == 0 {
					tf.full = true
				}
			}
			tf.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

// Type sends text one rune at a time like a user would
func (tf *TUITestFramework) Type(text string) error {
	tf.t.Helper()
	for _, r := range text {
		if err := tf.SendKeys(string(r)); err != nil {
			return err
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

func (tf *TUITestFramework) Enter() error      { return tf.SendKeys(KeyEnter) }
func (tf *TUITestFramework) Down() error       { return tf.SendKeys(KeyDown) }
func (tf *TUITestFramework) Clear() error      { return tf.SendKeys(KeyCtrlU) }
func (tf *TUITestFramework) Close() error      { return tf.SendKeys(KeyEscape) }
func (tf *TUITestFramework) Reopen() error     { return tf.SendKeys(KeyCtrlO) }
func (tf *TUITestFramework) ToggleHelp() error { return tf.SendKeys(KeyCtrlG) }

// Quit sends Ctrl+C, the only key that leaves the app
func (tf *TUITestFramework) Quit() error { return tf.SendKeys(KeyCtrlC) }

// Ready waits for the first frame, whose status line names the mode
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.seeWithin("mode:", readyWithin)
}

// SeePlain waits for text to appear in the output with ANSI stripped
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.seeWithin(text, seeWithin)
}

func (tf *TUITestFramework) seeWithin(text string, timeout time.Duration) bool {
	return tf.WaitFor(func(plain string) bool { return strings.Contains(plain, text) }, timeout)
}

// WaitFor polls the stripped output until pred holds or timeout passes
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(tf.SnapshotPlain()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollEvery)
	}
}

// Snapshot returns everything recorded so far, oldest first
func (tf *TUITestFramework) Snapshot() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	if !tf.full {
		return string(tf.ring[:tf.pos])
	}
	return string(tf.ring[tf.pos:]) + string(tf.ring[:tf.pos])
}

func (tf *TUITestFramework) SnapshotPlain() string {
	return ansiRe.ReplaceAllString(tf.Snapshot(), "")
}

// DumpTailOnFail writes the last n bytes of stripped output next to the test
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, name string, n int) {
	t.Helper()
	s := tf.SnapshotPlain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	p := filepath.Join(t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(s), 0o644)
	t.Logf("Saved tail to %s", p)
}

// Cleanup closes the pty, which hangs up the app, then kills what is left
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.tty != nil {
		_ = tf.tty.Close()
		tf.tty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
}
