package harvest

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder collects events as output lines.
type recorder struct {
	lines []string
}

func (r *recorder) Progress(day int) { r.lines = append(r.lines, fmt.Sprintf("Day %d", day)) }
func (r *recorder) Complete()        { r.lines = append(r.lines, "Harvest time!") }

func expectedLines(days int) []string {
	lines := make([]string, 0, days+1)
	for d := 1; d <= days; d++ {
		lines = append(lines, fmt.Sprintf("Day %d", d))
	}
	return append(lines, "Harvest time!")
}

func TestCount(t *testing.T) {
	tests := []struct {
		name   string
		target int
		opts   []Option
		want   []string
	}{
		{name: "three days", target: 3, want: []string{"Day 1", "Day 2", "Day 3", "Harvest time!"}},
		{name: "one day", target: 1, want: []string{"Day 1", "Harvest time!"}},
		{name: "zero days immediate", target: 0, want: []string{"Harvest time!"}},
		{
			name:   "zero days forced",
			target: 0,
			opts:   []Option{WithZeroDayPolicy(ZeroDayForced)},
			want:   []string{"Day 1", "Harvest time!"},
		},
		{
			name:   "forced policy leaves positive targets alone",
			target: 2,
			opts:   []Option{WithZeroDayPolicy(ZeroDayForced)},
			want:   []string{"Day 1", "Day 2", "Harvest time!"},
		},
		{
			name:   "negative completes immediately",
			target: -4,
			opts:   []Option{WithNegativePolicy(PolicyComplete)},
			want:   []string{"Harvest time!"},
		},
		{
			name:   "negative completes immediately even when zero is forced",
			target: -3,
			opts:   []Option{WithNegativePolicy(PolicyComplete), WithZeroDayPolicy(ZeroDayForced)},
			want:   []string{"Harvest time!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			require.NoError(t, Count(context.Background(), tt.target, rec, tt.opts...))
			if diff := cmp.Diff(tt.want, rec.lines); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCount_ProgressCountMatchesTarget(t *testing.T) {
	for target := 0; target <= 50; target++ {
		rec := &recorder{}
		require.NoError(t, Count(context.Background(), target, rec))
		if diff := cmp.Diff(expectedLines(target), rec.lines); diff != "" {
			t.Fatalf("target %d mismatch (-want +got):\n%s", target, diff)
		}
	}
}

func TestStart_NegativeRejected(t *testing.T) {
	s, err := Start(-1)
	require.ErrorIs(t, err, ErrNegativeTarget)
	assert.Nil(t, s)
}

func TestSession_StateMachine(t *testing.T) {
	var zero Session
	assert.Equal(t, Uninitialized, zero.State())
	_, ok := zero.Step()
	assert.False(t, ok, "an unstarted session must not produce events")

	s, err := Start(2)
	require.NoError(t, err)
	assert.Equal(t, Counting, s.State())
	assert.Equal(t, 0, s.Elapsed())

	prev := s.Elapsed()
	var events []Event
	for {
		ev, ok := s.Step()
		if !ok {
			break
		}
		events = append(events, ev)
		assert.GreaterOrEqual(t, s.Elapsed(), prev)
		assert.LessOrEqual(t, s.Elapsed(), s.Target())
		prev = s.Elapsed()
	}

	want := []Event{
		{Kind: EventProgress, Day: 1},
		{Kind: EventProgress, Day: 2},
		{Kind: EventComplete, Day: 2},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Done, s.State())

	_, ok = s.Step()
	assert.False(t, ok, "Done is terminal")
}

func TestSession_ForcedZeroKeepsInvariant(t *testing.T) {
	s, err := Start(0, WithZeroDayPolicy(ZeroDayForced))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Target())
	require.NoError(t, s.Run(context.Background(), &recorder{}))
	assert.Equal(t, s.Target(), s.Elapsed())
}

func TestSession_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := Start(5)
	require.NoError(t, err)
	rec := &recorder{}
	err = s.Run(ctx, rec)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.lines)
	assert.Equal(t, Counting, s.State())
}

func TestStartFrom_Prompt(t *testing.T) {
	var out bytes.Buffer
	src := &PromptSource{In: bufio.NewReader(strings.NewReader("3\n")), Out: &out}

	s, err := StartFrom(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Target())

	rep := NewWriterReporter(&out)
	require.NoError(t, s.Run(context.Background(), rep))
	assert.Equal(t, "Days until harvest: Day 1\nDay 2\nDay 3\nHarvest time!\n", out.String())
}

func TestPromptSource(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{name: "plain", input: "7\n", want: 7},
		{name: "whitespace", input: "  12  \r\n", want: 12},
		{name: "no trailing newline", input: "4", want: 4},
		{name: "negative parses", input: "-2\n", want: -2},
		{name: "word", input: "soon\n", wantErr: ErrInvalidTarget},
		{name: "float", input: "2.5\n", wantErr: ErrInvalidTarget},
		{name: "blank line", input: "\n", wantErr: ErrInvalidTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			src := &PromptSource{In: bufio.NewReader(strings.NewReader(tt.input)), Out: &out, Prompt: "Days? "}
			got, err := src.Target(context.Background())
			assert.Equal(t, "Days? ", out.String())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptSource_EmptyInput(t *testing.T) {
	src := &PromptSource{In: bufio.NewReader(strings.NewReader("")), Out: &bytes.Buffer{}}
	_, err := src.Target(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input")
}

func TestWriterReporter_CustomMessages(t *testing.T) {
	var out bytes.Buffer
	rep := &WriterReporter{W: &out, ProgressFormat: "day %d passed", CompletionMessage: "Ready to pick!"}
	require.NoError(t, Count(context.Background(), 2, rep))
	assert.Equal(t, "day 1 passed\nday 2 passed\nReady to pick!\n", out.String())
}

func TestParsePolicies(t *testing.T) {
	z, err := ParseZeroDayPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ZeroDayImmediate, z)

	z, err = ParseZeroDayPolicy("forced")
	require.NoError(t, err)
	assert.Equal(t, ZeroDayForced, z)

	_, err = ParseZeroDayPolicy("sometimes")
	assert.Error(t, err)

	n, err := ParseNegativePolicy("complete")
	require.NoError(t, err)
	assert.Equal(t, PolicyComplete, n)

	_, err = ParseNegativePolicy("ignore")
	assert.Error(t, err)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Uninitialized", Uninitialized.String())
	assert.Equal(t, "Counting", Counting.String())
	assert.Equal(t, "Done", Done.String())
	assert.Equal(t, "Unknown", State(9).String())
}
