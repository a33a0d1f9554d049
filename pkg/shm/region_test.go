package shm

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"
)

type failingMapper struct {
	calls atomic.Int32
}

func (m *failingMapper) Map(context.Context, OpenOptions) (Mapping, error) {
	m.calls.Add(1)
	return nil, errors.New("no such segment")
}

type RegionTestSuite struct {
	suite.Suite
	ctx    context.Context
	mapper *HeapMapper
}

func (s *RegionTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mapper = NewHeapMapper()
}

func (s *RegionTestSuite) newRegion(cfg Config) *Region {
	if cfg.Mapper == nil {
		cfg.Mapper = s.mapper
	}
	r, err := NewRegion(cfg)
	s.Require().NoError(err)
	return r
}

func (s *RegionTestSuite) TestNewRegionValidates() {
	_, err := NewRegion(Config{Size: 8})
	s.Require().Error(err)
	_, err = NewRegion(Config{Name: "x"})
	s.Require().Error(err)
}

func (s *RegionTestSuite) TestAcquireIsIdempotent() {
	r := s.newRegion(Config{Name: "seg", Size: 108, Create: true})
	s.Require().False(r.Mapped())
	s.Require().Nil(r.Bytes())

	mem1, err := r.Acquire(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(mem1, 108)
	mem1[0] = 9

	mem2, err := r.Acquire(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(byte(9), mem2[0])
	s.Require().True(r.Mapped())
	s.Require().Same(&mem1[0], &r.Bytes()[0])
}

func (s *RegionTestSuite) TestAcquireFailureIsRetried() {
	m := &failingMapper{}
	r := s.newRegion(Config{Name: "seg", Size: 8, Mapper: m})

	_, err := r.Acquire(s.ctx)
	s.Require().ErrorIs(err, ErrMappingUnavailable)
	s.Require().False(r.Mapped())

	_, err = r.Acquire(s.ctx)
	s.Require().ErrorIs(err, ErrMappingUnavailable)
	s.Require().Equal(int32(2), m.calls.Load())
}

func (s *RegionTestSuite) TestOpenWithoutCreateNeedsPeer() {
	r := s.newRegion(Config{Name: "peer", Size: 16})
	_, err := r.Acquire(s.ctx)
	s.Require().ErrorIs(err, ErrMappingUnavailable)

	producer := s.newRegion(Config{Name: "peer", Size: 16, Create: true})
	pmem, err := producer.Acquire(s.ctx)
	s.Require().NoError(err)
	pmem[3] = 0x7f

	mem, err := r.Acquire(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(byte(0x7f), mem[3])
}

func (s *RegionTestSuite) TestReleaseRunsHookBeforeUnmap() {
	var seen []byte
	r := s.newRegion(Config{
		Name:   "seg",
		Size:   8,
		Create: true,
		OnRelease: func(mem []byte) {
			mem[0] = 0xff
			seen = mem
		},
	})

	s.Require().NoError(r.Release(s.ctx))
	s.Require().Nil(seen)

	_, err := r.Acquire(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(r.Release(s.ctx))
	s.Require().Len(seen, 8)
	s.Require().False(r.Mapped())
	s.Require().Equal(byte(0xff), s.mapper.Segment("seg")[0])

	s.Require().NoError(r.Release(s.ctx))

	_, err = r.Acquire(s.ctx)
	s.Require().NoError(err)
	s.Require().True(r.Mapped())
}

func (s *RegionTestSuite) TestHeapMapperRejectsBadSize() {
	_, err := s.mapper.Map(s.ctx, OpenOptions{Name: "bad", Size: 0, Create: true})
	s.Require().Error(err)

	_, err = s.mapper.Map(s.ctx, OpenOptions{Name: "small", Size: 4, Create: true})
	s.Require().NoError(err)
	_, err = s.mapper.Map(s.ctx, OpenOptions{Name: "small", Size: 8})
	s.Require().Error(err)

	s.mapper.Remove("small")
	s.Require().Nil(s.mapper.Segment("small"))
}

func TestRegionTestSuite(t *testing.T) {
	suite.Run(t, new(RegionTestSuite))
}
