package validation

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sat-clique/garrett/gates"
)

// chainStructure builds n valid AND gates over disjoint variables, with
// the gates at the given positions replaced by non-functional encodings.
func chainStructure(n int, invalidAt ...int) *gates.Structure {
	bad := make(map[int]bool)
	for _, i := range invalidAt {
		bad[i] = true
	}
	s := &gates.Structure{}
	for i := 0; i < n; i++ {
		base := i * 3
		x1, x2, y := base+1, base+2, base+3
		var g gates.Gate
		if bad[i] {
			g = makeGate(y, 1,
				clause(-x1, -x2, y),
				clause(-x1, -x2, -y),
			)
		} else {
			g = makeGate(y, 1,
				clause(-x1, -x2, y),
				clause(x1, -y),
				clause(x2, -y),
			)
		}
		s.Gates = append(s.Gates, g)
	}
	return s
}

func TestValidateAllValid(t *testing.T) {
	verdict, err := Validate(chainStructure(6), 2, nil, WithDiagnostics(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, Valid, verdict)
}

func TestValidateFindsInvalidGate(t *testing.T) {
	verdict, err := Validate(chainStructure(6, 3), 2, nil, WithDiagnostics(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, Invalid, verdict)
}

func TestValidateDeterministicAcrossWorkerCounts(t *testing.T) {
	for _, structure := range []*gates.Structure{
		chainStructure(7),
		chainStructure(7, 0),
		chainStructure(7, 6),
		chainStructure(7, 2, 5),
	} {
		var want Verdict
		for n := 1; n <= 5; n++ {
			got, err := Validate(structure, n, nil, WithDiagnostics(io.Discard))
			require.NoError(t, err)
			if n == 1 {
				want = got
				continue
			}
			assert.Equal(t, want, got, "verdict changed between 1 and %d workers", n)
		}
	}
}

func TestValidateInvalidInEveryChunk(t *testing.T) {
	// An invalid gate per chunk must not stop the other workers from
	// reporting theirs.
	var buf bytes.Buffer
	verdict, err := Validate(chainStructure(8, 1, 6), 2, nil, WithDiagnostics(&buf))
	require.NoError(t, err)
	assert.Equal(t, Invalid, verdict)
	assert.Equal(t, 2, strings.Count(buf.String(), "Validation failed"))
}

func TestValidateProgress(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	sink := func(done int) {
		mu.Lock()
		seen = append(seen, done)
		mu.Unlock()
	}
	_, err := Validate(chainStructure(9), 3, sink, WithDiagnostics(io.Discard))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, seen[i], seen[i-1], "progress went backwards")
	}
	assert.Equal(t, 9, seen[len(seen)-1], "progress must end at the gate count")
}

func TestValidateEmptyStructure(t *testing.T) {
	var seen []int
	verdict, err := Validate(&gates.Structure{}, 4, func(done int) {
		seen = append(seen, done)
	})
	require.NoError(t, err)
	assert.Equal(t, Valid, verdict)
	assert.Equal(t, []int{0}, seen)
}

func TestValidateMoreWorkersThanGates(t *testing.T) {
	verdict, err := Validate(chainStructure(2), 16, nil, WithDiagnostics(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, Valid, verdict)
}

func TestValidateRejectsBadWorkerCount(t *testing.T) {
	_, err := Validate(chainStructure(1), 0, nil)
	assert.Error(t, err)
}

func TestValidateRejectsMalformedStructure(t *testing.T) {
	s := &gates.Structure{Gates: []gates.Gate{
		makeGate(3, 1, clause(-1, 3), clause(1, 2)),
	}}
	_, err := Validate(s, 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed gate structure")
}

func TestValidateDiagnosticFormat(t *testing.T) {
	var buf bytes.Buffer
	s := &gates.Structure{Gates: []gates.Gate{nonFunctionalGate()}}
	verdict, err := Validate(s, 1, nil, WithDiagnostics(&buf))
	require.NoError(t, err)
	require.Equal(t, Invalid, verdict)

	want := "Validation failed for gate with output variable 3\n" +
		"Clauses:\n" +
		"( -1 -2 3 )\n" +
		"( -1 -2 -3 )\n"
	assert.Equal(t, want, buf.String())
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "invalid", Invalid.String())
}

func TestValidateManyGatesManyWorkers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping larger validation run in short mode")
	}
	for _, invalid := range [][]int{nil, {0}, {39}, {7, 23, 31}} {
		name := fmt.Sprintf("invalid=%v", invalid)
		t.Run(name, func(t *testing.T) {
			structure := chainStructure(40, invalid...)
			verdict, err := Validate(structure, 4, nil, WithDiagnostics(io.Discard))
			require.NoError(t, err)
			if len(invalid) == 0 {
				assert.Equal(t, Valid, verdict)
			} else {
				assert.Equal(t, Invalid, verdict)
			}
		})
	}
}
