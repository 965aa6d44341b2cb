// Package capture produces binary attachments from local input devices.
package capture

import (
	"bytes"
	"os"
	"os/exec"
	"sync"
	"time"

	apierrors "github.com/chattatrader/chattacli/internal/errors"
	"github.com/chattatrader/chattacli/internal/models"
)

// AudioSource is an open microphone. The production implementation drives
// an external capture process; tests substitute an in-memory source.
type AudioSource interface {
	Start() error
	Stop() ([]byte, error)
}

// SourceFactory opens an AudioSource, failing when no input device is
// available or access is refused.
type SourceFactory func() (AudioSource, error)

// Recorder is the audio capture state machine: idle -> recording -> idle.
// At most one session is active; Start while recording is a no-op.
type Recorder struct {
	mu        sync.Mutex
	recording bool
	source    AudioSource
	open      SourceFactory
}

// NewRecorder creates a Recorder. A nil factory probes the system for a
// capture utility.
func NewRecorder(open SourceFactory) *Recorder {
	if open == nil {
		open = openMicrophone
	}
	return &Recorder{open: open}
}

// Start begins a capture session. Starting while already recording does
// nothing: the state stays recording and no second device is acquired.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return nil
	}

	source, err := r.open()
	if err != nil {
		return err
	}
	if err := source.Start(); err != nil {
		return apierrors.NewPermissionError("microphone", err.Error())
	}

	r.source = source
	r.recording = true
	return nil
}

// Recording reports whether a session is active.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Stop finalizes the in-memory buffer into a single attachment and
// releases the device. Stopping while idle returns nothing.
func (r *Recorder) Stop() (*models.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil, nil
	}

	source := r.source
	r.source = nil
	r.recording = false

	data, err := source.Stop()
	if err != nil {
		return nil, err
	}
	return &models.Attachment{
		Kind: models.AttachmentAudio,
		MIME: "audio/wav",
		Data: data,
	}, nil
}

// Abort discards any active session without producing an attachment.
// Called when the chat view unmounts.
func (r *Recorder) Abort() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return
	}
	source := r.source
	r.source = nil
	r.recording = false
	_, _ = source.Stop()
}

// captureCommands lists known capture utilities in probe order.
var captureCommands = [][]string{
	{"arecord", "-q", "-f", "cd", "-t", "wav", "-"},
	{"rec", "-q", "-t", "wav", "-"},
	{"ffmpeg", "-loglevel", "quiet", "-f", "pulse", "-i", "default", "-f", "wav", "-"},
}

// openMicrophone probes for an available capture utility.
func openMicrophone() (AudioSource, error) {
	for _, argv := range captureCommands {
		if _, err := exec.LookPath(argv[0]); err == nil {
			return &processSource{argv: argv}, nil
		}
	}
	return nil, apierrors.NewPermissionError("microphone",
		"no capture utility found (tried arecord, rec, ffmpeg)")
}

// processSource records by running an external capture process and
// collecting its stdout.
type processSource struct {
	argv []string
	cmd  *exec.Cmd
	buf  bytes.Buffer
}

func (s *processSource) Start() error {
	cmd := exec.Command(s.argv[0], s.argv[1:]...)
	cmd.Stdout = &s.buf
	if err := cmd.Start(); err != nil {
		return err
	}
	s.cmd = cmd
	return nil
}

func (s *processSource) Stop() ([]byte, error) {
	if s.cmd == nil || s.cmd.Process == nil {
		return s.buf.Bytes(), nil
	}

	_ = s.cmd.Process.Signal(os.Interrupt)
	done := make(chan struct{})
	go func() {
		_ = s.cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		_ = s.cmd.Process.Kill()
		<-done
	}

	return s.buf.Bytes(), nil
}
