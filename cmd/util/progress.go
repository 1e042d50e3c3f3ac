package util

// Progress counts finished jobs (PDB files, usually) and prints a running
// total when '-verbose' is set. Failed jobs are always reported.
type Progress struct {
	errs chan error
	done chan struct{}
}

func NewProgress(total int) Progress {
	p := Progress{make(chan error), make(chan struct{})}
	go func() {
		completed := 0
		errorCount := 0
		for err := range p.errs {
			if err == nil {
				completed += 1
			} else {
				errorCount += 1
				Warnf("%s", err)
			}
			ratio := 100.0 * (float64(completed+errorCount) / float64(total))
			Verbosef("%d of %d files done (%0.2f%%, %d errors)",
				completed+errorCount, total, ratio, errorCount)
		}
		p.done <- struct{}{}
	}()
	return p
}

// JobDone records a finished job. A non-nil error marks it as failed.
func (p Progress) JobDone(err error) {
	p.errs <- err
}

// Close waits for every reported job to be printed.
func (p Progress) Close() {
	close(p.errs)
	<-p.done
}
