package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// spinnerOut is where spinners draw. Tests swap it for a buffer.
var spinnerOut io.Writer = os.Stderr

// withSpinner animates message on spinnerOut while fn runs, for steps that
// report nothing on their own such as Graphviz layout. The line is cleared
// when fn returns; on error failMsg is printed in its place.
func withSpinner(ctx context.Context, message, failMsg string, fn func() error) error {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	out := spinnerOut

	go func() {
		defer close(done)
		t := time.NewTicker(spinnerTick)
		defer t.Stop()
		for frame := 0; ; frame++ {
			select {
			case <-ctx.Done():
				fmt.Fprintf(out, "\r%s\r", strings.Repeat(" ", len(message)+4))
				return
			case <-t.C:
				icon := styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)])
				fmt.Fprintf(out, "\r%s %s", icon, StyleDim.Render(message))
			}
		}
	}()

	err := fn()
	cancel()
	<-done
	if err != nil && failMsg != "" {
		printError("%s", failMsg)
	}
	return err
}
