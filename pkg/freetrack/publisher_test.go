package freetrack

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type PublisherTestSuite struct {
	suite.Suite
	mem []byte
	pub *Publisher
}

func (s *PublisherTestSuite) SetupTest() {
	s.mem = make([]byte, StateSize)
	var err error
	s.pub, err = NewPublisher(s.mem, WithTable([TableSize]byte{9, 0, 0, 0, 0, 0, 0, 1}), WithCountdown(3))
	s.Require().NoError(err)
}

func (s *PublisherTestSuite) TestNewPublisherRejectsShortRecord() {
	_, err := NewPublisher(make([]byte, 10))
	s.Require().Error(err)
}

func (s *PublisherTestSuite) TestPublishMirrorsRegisteredGame() {
	st := s.pub.State()
	st.SetGameID(42)
	s.Require().False(st.Consistent())

	s.pub.Publish(samplePose())
	s.Require().True(st.Consistent())
	s.Require().Equal(uint32(42), st.GameID2())
	s.Require().Equal(int32(3), st.Countdown())
	s.Require().Equal(samplePose(), st.Pose())
	s.Require().Equal([TableSize]byte{9, 0, 0, 0, 0, 0, 0, 1}, st.Table())
}

func (s *PublisherTestSuite) TestResetAndDisable() {
	s.pub.Publish(samplePose())
	s.pub.Reset()
	s.Require().Equal(CountdownReset, s.pub.State().Countdown())
	s.pub.Disable()
	s.Require().Equal(CountdownDisabled, s.pub.State().Countdown())
}

func (s *PublisherTestSuite) TestDefaultCountdown() {
	pub, err := NewPublisher(make([]byte, StateSize), WithCountdown(0))
	s.Require().NoError(err)
	pub.Publish(PoseSample{})
	s.Require().Equal(DefaultCountdown, pub.State().Countdown())
}

func (s *PublisherTestSuite) TestFeederKeepsNewest() {
	f := NewFeeder(s.pub, 8)
	s.Require().False(f.Flush())

	for i := 1; i <= 3; i++ {
		ok, err := f.Offer(PoseSample{Yaw: float32(i)})
		s.Require().NoError(err)
		s.Require().True(ok)
	}
	s.Require().Equal(3, f.Pending())
	s.Require().True(f.Flush())
	s.Require().Equal(float32(3), s.pub.State().Pose().Yaw)
	s.Require().Equal(uint64(2), f.Dropped())
	s.Require().Equal(uint64(1), f.Published())
	s.Require().Equal(0, f.Pending())
}

func (s *PublisherTestSuite) TestFeederFullRingKeepsNewest() {
	f := NewFeeder(s.pub, 2)
	for i := 1; i <= 2; i++ {
		ok, err := f.Offer(PoseSample{Yaw: float32(i)})
		s.Require().NoError(err)
		s.Require().True(ok)
	}
	ok, err := f.Offer(PoseSample{Yaw: 3})
	s.Require().NoError(err)
	s.Require().False(ok)
	s.Require().Equal(uint64(1), f.Dropped())
	s.Require().Equal(2, f.Pending())

	s.Require().True(f.Flush())
	s.Require().Equal(float32(3), s.pub.State().Pose().Yaw)
	s.Require().Equal(uint64(2), f.Dropped())
}

func (s *PublisherTestSuite) TestFeederConcurrentOfferAndFlush() {
	f := NewFeeder(s.pub, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 1000; i++ {
			_, err := f.Offer(PoseSample{Yaw: float32(i)})
			s.NoError(err)
		}
	}()
	for {
		select {
		case <-done:
			f.Flush()
			s.Require().Equal(float32(1000), s.pub.State().Pose().Yaw)
			s.Require().Equal(uint64(1000), f.Dropped()+f.Published())
			return
		default:
			f.Flush()
		}
	}
}

func (s *PublisherTestSuite) TestFeederRun() {
	f := NewFeeder(s.pub, 0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx, time.Millisecond) }()

	_, err := f.Offer(PoseSample{Pitch: 0.5})
	s.Require().NoError(err)
	s.Require().Eventually(func() bool { return f.Published() == 1 }, time.Second, time.Millisecond)
	s.Require().Equal(float32(0.5), s.pub.State().Pose().Pitch)

	cancel()
	s.Require().ErrorIs(<-done, context.Canceled)
	_, err = f.Offer(PoseSample{})
	s.Require().ErrorIs(err, ErrFeederClosed)
}

func (s *PublisherTestSuite) TestDebugStateDetail() {
	s.pub.State().SetGameID(7)
	s.pub.Publish(samplePose())
	path := filepath.Join(s.T().TempDir(), DefaultName)
	s.Require().NoError(os.WriteFile(path, s.mem, 0600))

	var out bytes.Buffer
	s.Require().NoError(DebugStateDetail(&out, path))
	s.Require().Contains(out.String(), "countdown:3")
	s.Require().Contains(out.String(), "game:7 game2:7 consistent:true")
	s.Require().Contains(out.String(), "table 09 00 00 00 00 00 00 01")

	s.Require().Error(DebugStateDetail(&out, filepath.Join(s.T().TempDir(), "missing")))
}

func TestPublisherTestSuite(t *testing.T) {
	suite.Run(t, new(PublisherTestSuite))
}
