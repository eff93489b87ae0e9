package main

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

type fakeSession struct {
	in  io.Reader
	out bytes.Buffer
}

func (f *fakeSession) Read(p []byte) (int, error)  { return f.in.Read(p) }
func (f *fakeSession) Write(p []byte) (int, error) { return f.out.Write(p) }

func TestSessionIO_Pty(t *testing.T) {
	s := &fakeSession{in: strings.NewReader("e4\rresign\r")}
	in, out := sessionIO(s, true)

	sc := bufio.NewScanner(in)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(lines) != 2 || lines[0] != "e4" || lines[1] != "resign" {
		t.Errorf("lines = %q; want [e4 resign]", lines)
	}

	s.out.Reset()
	if _, err := io.WriteString(out, "CHECK!\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := s.out.String(); got != "CHECK!\r\n" {
		t.Errorf("terminal output = %q; want CRLF line ending", got)
	}
}

func TestSessionIO_Plain(t *testing.T) {
	s := &fakeSession{in: strings.NewReader("e4\n")}
	in, out := sessionIO(s, false)
	if in != io.Reader(s) || out != io.Writer(s) {
		t.Error("plain sessions should be used directly")
	}
}

func TestLineReader_ShortBuffer(t *testing.T) {
	s := &fakeSession{in: strings.NewReader("Nf3\r")}
	in, _ := sessionIO(s, true)

	var got []byte
	buf := make([]byte, 2)
	for {
		n, err := in.Read(buf)
		got = append(got, buf[:n]...)
		if err != nil {
			if err != io.EOF {
				t.Fatalf("read: %v", err)
			}
			break
		}
	}
	if string(got) != "Nf3\n" {
		t.Errorf("read %q; want %q", got, "Nf3\n")
	}
}

func startSSH(t *testing.T, h *handler, next ssh.Handler, timeout time.Duration) (string, context.CancelFunc, <-chan error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &ssh.Server{Handler: h.track(next)}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	served := make(chan error, 1)
	go func() { served <- serve(ctx, srv, ln, timeout) }()
	return ln.Addr().String(), cancel, served
}

func openShell(t *testing.T, addr string) (*gossh.Client, *gossh.Session) {
	t.Helper()
	client, err := gossh.Dial("tcp", addr, &gossh.ClientConfig{
		User:            "alice",
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	sess, err := client.NewSession()
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := sess.Shell(); err != nil {
		t.Fatalf("shell: %v", err)
	}
	return client, sess
}

func TestServeWaitsForSessions(t *testing.T) {
	h := &handler{}
	started := make(chan struct{})
	release := make(chan struct{})
	addr, cancel, served := startSSH(t, h, func(s ssh.Session) {
		close(started)
		<-release
		_, _ = io.WriteString(s, "bye\n")
	}, time.Minute)

	client, sess := openShell(t, addr)
	<-started
	cancel()

	select {
	case err := <-served:
		t.Fatalf("serve returned %v while a session was running", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	if err := sess.Wait(); err != nil {
		t.Errorf("session: %v", err)
	}
	client.Close()

	select {
	case err := <-served:
		if err != nil {
			t.Errorf("serve = %v; want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the session ended")
	}
	h.wait()
}

func TestServeClosesSessionsAfterTimeout(t *testing.T) {
	h := &handler{}
	started := make(chan struct{})
	addr, cancel, served := startSSH(t, h, func(s ssh.Session) {
		close(started)
		<-s.Context().Done()
	}, 50*time.Millisecond)

	client, _ := openShell(t, addr)
	defer client.Close()
	<-started
	cancel()

	select {
	case err := <-served:
		if err != nil {
			t.Errorf("serve = %v; want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the shutdown timeout")
	}

	waited := make(chan struct{})
	go func() {
		h.wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(5 * time.Second):
		t.Fatal("session still running after its connection was closed")
	}
}
