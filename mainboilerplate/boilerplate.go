// Package mainboilerplate contains shared boilerplate for this project's
// programs. The idea is to provide a selection of narrowly scoped methods so
// callers do not have to buy-in to an all-or-nothing approach.
package mainboilerplate

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	// Version of the program, populated at build time with -ldflags "-X ...".
	Version = "development"
	// BuildDate of the program, populated at build time.
	BuildDate = "unknown"
)

const (
	// k8sTerminationLog is the location to write a termination message for
	// Kubernetes to retrieve.
	//
	// Link: https://kubernetes.io/docs/tasks/debug-application-cluster/determine-reason-pod-failure/#setting-the-termination-log-file
	k8sTerminationLog = "/dev/termination-log"

	// maxStackTraceSize is the max bytes to allocate to stack traces.
	maxStackTraceSize = 32768
)

// Must logs and panics if |err| is non-nil, supplying |msg| and |extra| as
// the message and fields of the log event. |extra| alternates field names
// and values.
func Must(err error, msg string, extra ...interface{}) {
	if err == nil {
		return
	}
	var f = log.Fields{"err": err}
	for i := 0; i+1 < len(extra); i += 2 {
		f[extra[i].(string)] = extra[i+1]
	}
	log.WithFields(f).Panic(msg)
}

// recoverAndExit is deferred by programs to log a panic, with the stack of
// every goroutine, and make a best-effort attempt to write a termination
// message before re-panicking.
func recoverAndExit() {
	var r = recover()
	if r == nil {
		return
	}
	if f, err := os.OpenFile(k8sTerminationLog, os.O_WRONLY, 0777); err == nil {
		_, _ = fmt.Fprintf(f, "%+v", r)
		_ = f.Close()
	}

	var stack = make([]byte, maxStackTraceSize)
	stack = stack[:runtime.Stack(stack, true)]

	log.WithFields(log.Fields{
		"err":   r,
		"stack": strings.Split(string(stack), "\n"),
	}).Error("panic")

	panic(r)
}
