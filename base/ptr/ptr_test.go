package ptr

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type pointerSuite struct {
	suite.Suite
}

func (s *pointerSuite) TestPointer() {
	p1 := String(`vitalik.eth`)
	p2 := Int(137)
	p3 := Int32(1)
	p4 := Int64(891011)
	p5 := Bool(true)

	s.Equal(*p1, `vitalik.eth`)
	s.Equal(*p2, int(137))
	s.Equal(*p3, int32(1))
	s.Equal(*p4, int64(891011))
	s.Equal(*p5, true)
}

func TestPointerSuite(t *testing.T) {
	suite.Run(t, new(pointerSuite))
}
