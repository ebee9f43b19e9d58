package monitor

import (
	"context"
	"io"
	"time"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/logger"
)

// Loop redraws the ANSI dashboard once per interval until its context ends.
type Loop struct {
	sampler  *Sampler
	out      io.Writer
	codes    Codes
	interval time.Duration
	log      logger.Logger
	sleep    SleepFunc
	now      func() time.Time
}

// NewLoop creates a loop that writes frames to out.
func NewLoop(sampler *Sampler, out io.Writer, codes Codes, interval time.Duration) *Loop {
	return &Loop{
		sampler:  sampler,
		out:      out,
		codes:    codes,
		interval: interval,
		log:      logger.Noop(),
		sleep:    sleepContext,
		now:      time.Now,
	}
}

// SetLogger sets the logger used for debug output.
func (l *Loop) SetLogger(log logger.Logger) {
	l.log = log
}

// Run clears the screen once, then samples and draws a frame every tick.
// Cancelling ctx is the normal way out: the closing message is printed and
// Run returns nil. Only a failed write is returned as an error.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.write(l.codes.Clear + l.codes.Home + StartMessage + "\n"); err != nil {
		return err
	}

	for ctx.Err() == nil {
		start := l.now()

		sample, err := l.sampler.Collect(ctx)
		if err != nil {
			// Collect only fails when ctx is done.
			break
		}

		if err := l.write(RenderFrame(sample, l.codes)); err != nil {
			return err
		}

		elapsed := l.now().Sub(start)
		l.log.Debug("tick took %s", elapsed)

		if remaining := l.interval - elapsed; remaining > 0 {
			if err := l.sleep(ctx, remaining); err != nil {
				break
			}
		}
	}

	return l.write("\n" + l.codes.Reset + ClosingMessage + "\n")
}

func (l *Loop) write(s string) error {
	if _, err := io.WriteString(l.out, s); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Failed to write dashboard frame",
			"Check that the terminal or output pipe is still open")
	}
	return nil
}
