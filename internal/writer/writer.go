// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/range-replicator/internal/driver"
)

type writerImpl struct {
	targets []Target
}

func New(targets []Target) Writer {
	return &writerImpl{targets: targets}
}

// Write delivers the sample to every target. Per-target failures are joined
// into one error; a failing target never blocks the others and never stops
// the pipeline.
func (w *writerImpl) Write(s driver.Sample) error {
	var errs []string

	for _, t := range w.targets {
		if err := t.Publish(s); err != nil {
			errs = append(errs, fmt.Sprintf(
				"writer: target=%s err=%v",
				t.Name(), err,
			))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}
	return nil
}
