package explore_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandelzoom/internal/explore"
	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/nav"
)

// scripted replays one Keys value per frame and records what it was given.
type scripted struct {
	script    []nav.Keys
	frame     int
	maxFrames int
	pushed    []nav.Params
	draws     int
	closed    bool
	calls     []string
}

func (s *scripted) Name() string { return "scripted" }

func (s *scripted) Poll() nav.Keys {
	s.calls = append(s.calls, "poll")
	if s.frame < len(s.script) {
		k := s.script[s.frame]
		s.frame++
		return k
	}
	s.frame++
	return nav.Keys{}
}

func (s *scripted) Push(p nav.Params) {
	s.calls = append(s.calls, "push")
	s.pushed = append(s.pushed, p)
}

func (s *scripted) Draw() {
	s.calls = append(s.calls, "draw")
	s.draws++
}

func (s *scripted) ShouldClose() bool { return s.frame >= s.maxFrames }

func (s *scripted) Close() { s.closed = true }

var _ = Describe("Run", func() {
	var st *nav.State

	BeforeEach(func() {
		st = nav.New(fractal.Point{}, nav.DefaultConfig())
	})

	It("polls, pushes and draws once per frame in order", func() {
		fe := &scripted{maxFrames: 2}
		frames, err := explore.Run(context.Background(), fe, st)
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(Equal(2))
		Expect(fe.calls).To(Equal([]string{"poll", "push", "draw", "poll", "push", "draw"}))
	})

	It("pushes the state produced by that frame's keys", func() {
		fe := &scripted{
			maxFrames: 3,
			script:    []nav.Keys{{ZoomIn: true}, {ZoomIn: true}, {Right: true}},
		}
		_, err := explore.Run(context.Background(), fe, st)
		Expect(err).NotTo(HaveOccurred())
		Expect(fe.pushed).To(HaveLen(3))
		Expect(fe.pushed[0].Zoom).To(Equal(1.01))
		Expect(fe.pushed[1].Zoom).To(BeNumerically("~", 1.0201, 1e-12))
		Expect(fe.pushed[2].Center[0]).To(BeNumerically("~", nav.DefaultMoveSpeed/1.0201, 1e-15))
	})

	It("stops on the exit key without drawing that frame", func() {
		fe := &scripted{
			maxFrames: 100,
			script:    []nav.Keys{{}, {Exit: true}, {}},
		}
		frames, err := explore.Run(context.Background(), fe, st)
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(Equal(1))
		Expect(fe.draws).To(Equal(1))
	})

	It("returns the context error when canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fe := &scripted{maxFrames: 10}
		frames, err := explore.Run(ctx, fe, st)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(frames).To(BeZero())
	})
})

var _ = Describe("Open", func() {
	It("opens a registered backend", func() {
		explore.Register("scripted-test", func(explore.Settings) (explore.Frontend, error) {
			return &scripted{}, nil
		})
		fe, err := explore.Open("scripted-test", explore.Settings{})
		Expect(err).NotTo(HaveOccurred())
		Expect(fe.Name()).To(Equal("scripted"))
		Expect(explore.Backends()).To(ContainElement("scripted-test"))
	})

	It("wraps constructor failures", func() {
		boom := errors.New("no display")
		explore.Register("broken-test", func(explore.Settings) (explore.Frontend, error) {
			return nil, boom
		})
		_, err := explore.Open("broken-test", explore.Settings{})
		Expect(errors.Is(err, boom)).To(BeTrue())
	})

	It("picks the first registered backend for auto", func() {
		explore.Register("aaa-test", func(explore.Settings) (explore.Frontend, error) {
			return &scripted{}, nil
		})
		fe, err := explore.Open("auto", explore.Settings{})
		Expect(err).NotTo(HaveOccurred())
		Expect(fe.Name()).To(Equal("scripted"))
	})

	It("rejects unknown names", func() {
		_, err := explore.Open("vulkan", explore.Settings{})
		Expect(errors.Is(err, explore.ErrUnknownBackend)).To(BeTrue())
	})
})
