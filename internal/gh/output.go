package gh

import (
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
)

const outputLockTimeout = 10 * time.Second

// SetOutput records a step output. When GITHUB_OUTPUT is set the
// name=value pair is appended to that file under a file lock, since
// parallel jobs on the same runner can share it; otherwise the legacy
// set-output workflow command is printed to stdout.
func SetOutput(name, value string) error {
	outputFile := os.Getenv("GITHUB_OUTPUT")
	if outputFile == "" {
		fmt.Printf("::set-output name=%s::%s\n", name, value)
		return nil
	}

	release, err := acquireOutputLock(outputFile+".lock", outputLockTimeout)
	if err != nil {
		return err
	}
	defer release()

	f, err := os.OpenFile(outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", outputFile, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", name, value); err != nil {
		return fmt.Errorf("cannot write output %s: %w", name, err)
	}
	return nil
}

// acquireOutputLock obtains the lock guarding GITHUB_OUTPUT appends.
func acquireOutputLock(lockPath string, timeout time.Duration) (func(), error) {
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire output lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("another writer holds the output lock (lock: %s)", lockPath)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
