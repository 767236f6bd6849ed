package engine_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/forestfire/internal/engine"
	"github.com/san-kum/forestfire/internal/forest"
	"github.com/san-kum/forestfire/internal/input"
	"github.com/san-kum/forestfire/internal/render"
)

type recorder struct {
	log      *[]string
	frames   int
	failAt   int
	lastSeen string
}

func (r *recorder) Present(f *render.Frame) error {
	r.frames++
	*r.log = append(*r.log, "present")
	r.lastSeen = f.String()
	if r.failAt > 0 && r.frames == r.failAt {
		return errors.New("tty closed")
	}
	return nil
}

type script struct {
	log     *[]string
	batches [][]input.Event
	err     error
	held    map[input.Button]bool
}

func (s *script) Held(b input.Button) bool { return s.held[b] }

func (s *script) Drain() ([]input.Event, error) {
	*s.log = append(*s.log, "drain")
	if s.err != nil {
		return nil, s.err
	}
	if len(s.batches) == 0 {
		return nil, nil
	}
	next := s.batches[0]
	s.batches = s.batches[1:]
	return next, nil
}

var _ = Describe("Run", func() {
	var (
		calls   []string
		session *engine.Session
		surf    *recorder
		src     *script
	)

	BeforeEach(func() {
		calls = nil
		session = engine.NewSession(engine.Options{Width: 5, Height: 5, Rules: forest.Rules{}, Seed: 1})
		surf = &recorder{log: &calls}
		src = &script{log: &calls, held: map[input.Button]bool{}}
	})

	It("presents before draining and stops on escape", func() {
		src.batches = [][]input.Event{
			nil,
			{input.KeyDown{Key: input.KeyEscape}},
		}
		err := engine.Run(context.Background(), session, surf, src, time.Millisecond)
		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(Equal([]string{"present", "drain", "present", "drain"}))
		Expect(session.Generation()).To(BeEquivalentTo(2))
	})

	It("applies a click after the frame it arrived in", func() {
		src.batches = [][]input.Event{
			{input.PointerButtonDown{Button: input.ButtonLeft, X: 0, Y: 0}},
			{input.KeyDown{Key: input.KeyQuit}},
		}
		Expect(engine.Run(context.Background(), session, surf, src, time.Millisecond)).To(Succeed())
		// planted after frame 1, aged once by frame 2; the latch was released
		// by the poll before the second sweep.
		Expect(session.Grid().At(0, 0)).To(Equal(forest.Sapling2))
		Expect(session.Input().Latched(input.ButtonLeft)).To(BeFalse())
	})

	It("stops stepping while paused but still applies clicks", func() {
		src.batches = [][]input.Event{
			{input.KeyDown{Key: input.KeyPause}},
			{input.PointerButtonDown{Button: input.ButtonLeft, X: 1, Y: 1}},
			nil,
			{input.KeyDown{Key: input.KeyEscape}},
		}
		Expect(engine.Run(context.Background(), session, surf, src, time.Millisecond)).To(Succeed())
		Expect(session.Generation()).To(BeEquivalentTo(1))
		Expect(session.Grid().At(1, 1)).To(Equal(forest.Sapling1))
		Expect(surf.frames).To(Equal(4))
		Expect(surf.lastSeen).To(ContainSubstring(","))
	})

	It("resumes after a second pause key", func() {
		src.batches = [][]input.Event{
			{input.KeyDown{Key: input.KeyPause}},
			{input.KeyDown{Key: input.KeyPause}},
			{input.KeyDown{Key: input.KeyEscape}},
		}
		Expect(engine.Run(context.Background(), session, surf, src, time.Millisecond)).To(Succeed())
		Expect(session.Generation()).To(BeEquivalentTo(2))
	})

	It("clears the world on reset", func() {
		session.Grid().Set(2, 2, forest.Tree)
		src.batches = [][]input.Event{
			{input.KeyDown{Key: input.KeyReset}},
			{input.KeyDown{Key: input.KeyEscape}},
		}
		Expect(engine.Run(context.Background(), session, surf, src, time.Millisecond)).To(Succeed())
		Expect(session.Grid().At(2, 2)).To(Equal(forest.Empty))
		Expect(session.Generation()).To(BeEquivalentTo(1))
	})

	It("wraps surface failures", func() {
		surf.failAt = 1
		err := engine.Run(context.Background(), session, surf, src, time.Millisecond)
		var fe *engine.FrameError
		Expect(errors.As(err, &fe)).To(BeTrue())
		Expect(fe.Op).To(Equal("present"))
		Expect(errors.Is(err, engine.ErrSurface)).To(BeTrue())
		Expect(calls).To(Equal([]string{"present"}))
	})

	It("wraps input failures", func() {
		src.err = errors.New("read /dev/tty: eof")
		err := engine.Run(context.Background(), session, surf, src, time.Millisecond)
		Expect(errors.Is(err, engine.ErrInput)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("frame 0: drain"))
	})

	It("returns cleanly when the context is cancelled", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		Expect(engine.Run(ctx, session, surf, src, time.Millisecond)).To(Succeed())
		Expect(surf.frames).To(BeNumerically(">", 0))
	})
})
