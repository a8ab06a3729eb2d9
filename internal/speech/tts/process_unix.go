//go:build unix

package tts

import (
	"os"
	"syscall"
)

// pauseProcess suspends a synthesizer process on Unix systems
func pauseProcess(p *os.Process) error {
	return p.Signal(syscall.SIGSTOP)
}

// resumeProcess continues a suspended synthesizer process on Unix systems
func resumeProcess(p *os.Process) error {
	return p.Signal(syscall.SIGCONT)
}
