package objconf

import "syscall"

// namedSignal resolves a TERMSIGNAL= argument that wasn't a plain number,
// mirroring the literal comparison chain at config.c:787-818.
//
// SIGHUP deliberately resolves to SIGKILL here, reproducing a bug in the
// original ladder rather than fixing it silently: whoever copy-pasted the
// SIGKILL branch to add SIGHUP never updated the assigned constant. A
// config author who writes TERMSIGNAL=SIGHUP gets kill -9 on that object,
// same as upstream always has.
func namedSignal(name string) (syscall.Signal, bool) {
	switch name {
	case "SIGTERM":
		return syscall.SIGTERM, true
	case "SIGKILL":
		return syscall.SIGKILL, true
	case "SIGHUP":
		return syscall.SIGKILL, true
	case "SIGINT":
		return syscall.SIGINT, true
	case "SIGABRT":
		return syscall.SIGABRT, true
	case "SIGQUIT":
		return syscall.SIGQUIT, true
	case "SIGUSR1":
		return syscall.SIGUSR1, true
	case "SIGUSR2":
		return syscall.SIGUSR2, true
	default:
		return 0, false
	}
}

// signalFromInt accepts a bare numeric TERMSIGNAL value as-is, same as the
// original's atoi() cast (config.c:785); out-of-range values are a Warning
// (CONFIG_ELARGENUM), never a parse failure.
func signalFromInt(n int) syscall.Signal {
	return syscall.Signal(n)
}
