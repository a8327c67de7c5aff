//go:build unix

package sys

import "golang.org/x/sys/unix"

const sigWINCH = unix.SIGWINCH
