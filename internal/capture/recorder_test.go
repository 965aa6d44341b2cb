package capture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apierrors "github.com/chattatrader/chattacli/internal/errors"
	"github.com/chattatrader/chattacli/internal/models"
)

// fakeSource is an in-memory AudioSource.
type fakeSource struct {
	data     []byte
	startErr error
	started  int
	stopped  int
}

func (s *fakeSource) Start() error {
	s.started++
	return s.startErr
}

func (s *fakeSource) Stop() ([]byte, error) {
	s.stopped++
	return s.data, nil
}

func TestRecorderStartStop(t *testing.T) {
	source := &fakeSource{data: []byte("RIFFaudio")}
	r := NewRecorder(func() (AudioSource, error) { return source, nil })

	if r.Recording() {
		t.Fatal("recording before Start")
	}
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !r.Recording() {
		t.Fatal("not recording after Start")
	}

	att, err := r.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if r.Recording() {
		t.Error("still recording after Stop")
	}
	if att == nil {
		t.Fatal("Stop returned nil attachment")
	}
	if att.Kind != models.AttachmentAudio || att.MIME != "audio/wav" {
		t.Errorf("attachment = %s/%s", att.Kind, att.MIME)
	}
	if string(att.Data) != "RIFFaudio" {
		t.Errorf("attachment data = %q", att.Data)
	}
}

func TestStartWhileRecordingIsNoOp(t *testing.T) {
	source := &fakeSource{}
	opens := 0
	r := NewRecorder(func() (AudioSource, error) {
		opens++
		return source, nil
	})

	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := r.Start(); err != nil {
		t.Fatalf("second Start: %v", err)
	}

	if opens != 1 {
		t.Errorf("factory called %d times, want 1", opens)
	}
	if source.started != 1 {
		t.Errorf("source started %d times, want 1", source.started)
	}
	if !r.Recording() {
		t.Error("not recording after double Start")
	}
}

func TestStopWhileIdleReturnsNothing(t *testing.T) {
	r := NewRecorder(func() (AudioSource, error) { return &fakeSource{}, nil })
	att, err := r.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if att != nil {
		t.Errorf("idle Stop returned an attachment: %+v", att)
	}
}

func TestStartDeviceFailure(t *testing.T) {
	r := NewRecorder(func() (AudioSource, error) {
		return &fakeSource{startErr: errors.New("device busy")}, nil
	})
	err := r.Start()
	if err == nil {
		t.Fatal("Start returned nil for a failing device")
	}
	if !apierrors.IsPermissionError(err) {
		t.Errorf("error %v is not a PermissionError", err)
	}
	if r.Recording() {
		t.Error("recording after failed Start")
	}
}

func TestStartFactoryFailure(t *testing.T) {
	probeErr := apierrors.NewPermissionError("microphone", "no device")
	r := NewRecorder(func() (AudioSource, error) { return nil, probeErr })
	if err := r.Start(); !apierrors.IsPermissionError(err) {
		t.Errorf("error %v is not a PermissionError", err)
	}
}

func TestAbortDiscardsSession(t *testing.T) {
	source := &fakeSource{data: []byte("discarded")}
	r := NewRecorder(func() (AudioSource, error) { return source, nil })

	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	r.Abort()

	if r.Recording() {
		t.Error("recording after Abort")
	}
	if source.stopped != 1 {
		t.Errorf("source stopped %d times, want 1", source.stopped)
	}
}

// Minimal PNG header, enough for content detection.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestCaptureImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, pngHeader, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	att, err := CaptureImage(path)
	if err != nil {
		t.Fatalf("CaptureImage: %v", err)
	}
	if att.Kind != models.AttachmentImage {
		t.Errorf("Kind = %s", att.Kind)
	}
	if att.MIME != "image/png" {
		t.Errorf("MIME = %s", att.MIME)
	}
	if len(att.Data) != len(pngHeader) {
		t.Errorf("Data length = %d, want %d", len(att.Data), len(pngHeader))
	}
}

func TestCaptureImageRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text, clearly"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := CaptureImage(path); err == nil {
		t.Error("CaptureImage accepted a text file")
	}
}

func TestCaptureImageMissingFile(t *testing.T) {
	if _, err := CaptureImage(filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Error("CaptureImage accepted a missing file")
	}
}
