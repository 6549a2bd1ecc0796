package scene

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/A5-Website/atom-5-nexus/logging"
)

// Triggerer accepts queued triggers. Driver implements it.
type Triggerer interface {
	Trigger(node int, source string) error
	NodeCount() int
}

// Spontaneous fires a trigger at a uniformly random node on a fixed interval,
// simulating background activity.
type Spontaneous struct {
	target   Triggerer
	interval time.Duration
	rng      *rand.Rand
	log      logging.Logger
}

// NewSpontaneous creates an auto-trigger for t. A nil logger is allowed.
func NewSpontaneous(t Triggerer, interval time.Duration, seed int64, log logging.Logger) *Spontaneous {
	return &Spontaneous{
		target:   t,
		interval: interval,
		rng:      rand.New(rand.NewSource(seed)),
		log:      logging.OrNop(log).With(logging.Component("spontaneous")),
	}
}

// Fire queues one trigger and returns the chosen node, or -1 when the scene
// has no nodes.
func (s *Spontaneous) Fire() (int, error) {
	n := s.target.NodeCount()
	if n == 0 {
		return -1, nil
	}
	node := s.rng.Intn(n)
	if err := s.target.Trigger(node, SourceSpontaneous); err != nil {
		return node, err
	}
	s.log.Debug("fired", logging.Node(node))
	return node, nil
}

// Run fires every interval until ctx is done or the target closes.
// A non-positive interval disables auto-triggering.
func (s *Spontaneous) Run(ctx context.Context) error {
	if s.interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := s.Fire(); err != nil {
				if errors.Is(err, ErrClosed) {
					return nil
				}
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}
