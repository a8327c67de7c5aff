package sys

import "syscall"

// Windows doesn't have SIGWINCH, so use an impossible value.
const sigWINCH = syscall.Signal(-1)
