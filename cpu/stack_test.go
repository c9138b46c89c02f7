package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.True(s.Empty())
	assert.False(s.Full())

	err := s.Push(0x1234)
	assert.NoError(err)
	assert.False(s.Empty())
	assert.Equal(1, s.Sp)
	assert.Equal(uint16(0x1234), s.Data[0])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.NoError(s.Push(0x1234))
	assert.NoError(s.Push(0xabcd))

	val, err := s.Pop()
	assert.NoError(err)
	assert.Equal(uint16(0xabcd), val)
	assert.Equal(1, s.Sp)

	val, err = s.Pop()
	assert.NoError(err)
	assert.Equal(uint16(0x1234), val)
	assert.Equal(0, s.Sp)
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	val, err := s.Pop()
	assert.ErrorIs(err, ErrStackEmpty)
	assert.Equal(uint16(0), val)
	assert.Equal(0, s.Sp)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.NoError(s.Push(0x1234))
	assert.NoError(s.Push(0xabcd))

	val, err := s.Peek()
	assert.NoError(err)
	assert.Equal(uint16(0xabcd), val)
	assert.Equal(2, s.Sp)
}

func TestStack_Peek_Empty(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	val, err := s.Peek()
	assert.ErrorIs(err, ErrStackEmpty)
	assert.Equal(uint16(0), val)
}

func TestStack_Full(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}

	for i := range STACK_LIMIT {
		assert.False(s.Full())
		assert.NoError(s.Push(uint16(i)))
	}

	assert.True(s.Full())
	assert.Equal(STACK_LIMIT, s.Sp)

	err := s.Push(0xffff)
	assert.ErrorIs(err, ErrStackFull)
	assert.Equal(STACK_LIMIT, s.Sp)

	val, err := s.Peek()
	assert.NoError(err)
	assert.Equal(uint16(STACK_LIMIT-1), val)
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.NoError(s.Push(0x1234))
	assert.NoError(s.Push(0xabcd))

	s.Reset()
	assert.True(s.Empty())
	assert.Equal(Stack{}, *s)

	s.Reset()
	assert.True(s.Empty())
}
