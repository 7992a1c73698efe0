package lock

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLock() *Lock {
	return New(Config{Code: "1968", Passphrase: "Black Rock", Attempts: 3})
}

func TestLock_GrantedByCode(t *testing.T) {
	l := newTestLock()
	assert.Equal(t, StateLocked, l.State())

	assert.Equal(t, ResultGranted, l.Submit("1968"))
	assert.True(t, l.Granted())
	assert.Equal(t, 3, l.AttemptsLeft(), "a correct code costs no attempt")
}

func TestLock_GrantedByPassphrase(t *testing.T) {
	l := newTestLock()
	assert.Equal(t, ResultGranted, l.Submit("  black rock "))
	assert.True(t, l.Granted())
}

func TestLock_ThreeInvalidCodesDeny(t *testing.T) {
	l := newTestLock()

	assert.Equal(t, ResultInvalid, l.Submit("0000"))
	assert.Equal(t, 2, l.AttemptsLeft())
	assert.Equal(t, ResultInvalid, l.Submit("NORTHMOORE"))
	assert.Equal(t, 1, l.AttemptsLeft())
	assert.Equal(t, ResultDenied, l.Submit(""))
	assert.Equal(t, 0, l.AttemptsLeft())
	assert.True(t, l.Denied())

	assert.Equal(t, ResultIgnored, l.Submit("1968"), "denied lock ignores further input")
	assert.False(t, l.Granted())
}

func TestLock_CorrectBeforeExhaustion(t *testing.T) {
	l := newTestLock()
	l.Submit("1")
	l.Submit("2")
	assert.Equal(t, ResultGranted, l.Submit("1968"))
	assert.Equal(t, ResultIgnored, l.Submit("nope"))
	assert.True(t, l.Granted())
}

func TestLock_MinimumBudget(t *testing.T) {
	l := New(Config{Code: "X", Attempts: 0})
	assert.Equal(t, ResultDenied, l.Submit("Y"))
}

func TestLock_EmptyPassphraseNeverMatches(t *testing.T) {
	l := New(Config{Code: "1968", Attempts: 3})
	assert.Equal(t, ResultInvalid, l.Submit("   "))
}

func TestLock_RejectedTransitionIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	l := newTestLock()
	assert.Equal(t, ResultGranted, l.Submit("1968"))
	assert.Empty(t, buf.String())

	l.fire(eventDeny)
	assert.Equal(t, StateGranted, l.State(), "granted is terminal")
	assert.Contains(t, buf.String(), "[lock] "+eventDeny)
	assert.Equal(t, ResultIgnored, l.Submit("0000"))
}

func TestResult_String(t *testing.T) {
	tests := []struct {
		r    Result
		want string
	}{
		{ResultGranted, "Granted"},
		{ResultInvalid, "Invalid"},
		{ResultDenied, "Denied"},
		{ResultIgnored, "Ignored"},
		{Result(99), "Ignored"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.r.String())
	}
}

func TestPrompt_FilterAndUppercase(t *testing.T) {
	p := NewPrompt(32)
	assert.True(t, p.Type('b'))
	assert.True(t, p.Type(' '))
	assert.True(t, p.Type('-'))
	assert.True(t, p.Type('_'))
	assert.True(t, p.Type('9'))
	assert.False(t, p.Type('!'))
	assert.False(t, p.Type('\t'))
	assert.Equal(t, "B -_9", p.String())
}

func TestPrompt_MaxLength(t *testing.T) {
	p := NewPrompt(4)
	n := p.Insert("abcdef")
	assert.Equal(t, 4, n)
	assert.Equal(t, "ABCD", p.String())
	assert.False(t, p.Type('e'))
}

func TestPrompt_InsertFilters(t *testing.T) {
	p := NewPrompt(0)
	p.Insert("black rock!\n")
	assert.Equal(t, "BLACK ROCK", p.String())
	assert.Equal(t, DefaultMaxLen, p.maxLen)
}

func TestPrompt_BackspaceGraphemeAware(t *testing.T) {
	p := NewPrompt(32)
	p.Insert("ab")
	// decomposed é: letter + combining acute forms one cluster
	p.buf += "E\u0301"
	assert.Equal(t, 3, p.Len())

	p.Backspace()
	assert.Equal(t, "AB", p.String())
	p.Backspace()
	p.Backspace()
	assert.Equal(t, "", p.String())
	assert.NotPanics(t, p.Backspace)
}

func TestPrompt_Clear(t *testing.T) {
	p := NewPrompt(32)
	p.Insert(strings.Repeat("x", 10))
	p.Clear()
	assert.Equal(t, 0, p.Len())
}
