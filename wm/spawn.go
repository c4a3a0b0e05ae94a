package wm

import (
	"fmt"
	"os/exec"
	"syscall"

	"github.com/mattn/go-shellwords"
)

// commandLine splits cmd into an argument vector. Anything the parser stops
// at, such as pipes, redirections or command lists, is left to sh.
func commandLine(cmd string) ([]string, error) {
	p := shellwords.NewParser()
	p.ParseEnv = true

	args, err := p.Parse(cmd)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse %q: %w", cmd, err)
	}
	if p.Position != -1 {
		return []string{"sh", "-c", cmd}, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return args, nil
}

// spawn starts cmd in its own session and reaps it in the background. The
// exit status is not looked at.
func spawn(cmd string) error {
	args, err := commandLine(cmd)
	if err != nil {
		return err
	}

	c := exec.Command(args[0], args[1:]...)
	c.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := c.Start(); err != nil {
		return err
	}
	go c.Wait()

	return nil
}
